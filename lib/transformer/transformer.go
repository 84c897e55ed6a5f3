package transformer

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

var log = logger.GetGoI2PLogger()

// DefaultFilePermissions is used when Options.Perm is zero.
const DefaultFilePermissions = 0o644

// Options controls a single Transform call.
type Options struct {
	// Overwrite allows replacing an existing output file.
	Overwrite bool
	// CommentPrefix, when set, appends "<prefix>AUTO-CONFIGURED: <time>"
	// as the last line of the output.
	CommentPrefix string
	// Perm is the mode of the output file.
	Perm os.FileMode
	// Now supplies the trailer timestamp; defaults to time.Now.
	Now func() time.Time
}

// Transformer applies rule tables to template files on a filesystem.
type Transformer struct {
	fs afero.Fs
}

// New returns a Transformer working on fs.
func New(fs afero.Fs) *Transformer {
	return &Transformer{fs: fs}
}

// Transform reads templatePath, rewrites every line through table and
// writes the result to outputPath. Line terminators are preserved, so
// unmatched lines are byte-identical in the output.
func (t *Transformer) Transform(templatePath, outputPath string, table Table, opts Options) error {
	in, err := t.fs.Open(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return oops.With("path", templatePath).Wrapf(ErrTemplateNotFound, "template file not found: %s", templatePath)
		}
		return oops.With("path", templatePath).Wrapf(ErrIO, "open template %s: %v", templatePath, err)
	}
	defer in.Close()

	if !opts.Overwrite {
		if _, err := t.fs.Stat(outputPath); err == nil {
			return oops.With("path", outputPath).Wrapf(ErrOutputExists, "output file already exists: %s", outputPath)
		}
	}

	tmp, err := afero.TempFile(t.fs, filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".tmp-")
	if err != nil {
		return oops.With("path", outputPath).Wrapf(ErrIO, "stage output %s: %v", outputPath, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = t.fs.Remove(tmpName)
		}
	}()

	rewritten, total, err := t.copyLines(in, tmp, table, opts)
	if err != nil {
		return oops.With("template", templatePath, "output", outputPath).Wrapf(ErrIO, "transform %s: %v", templatePath, err)
	}
	if err := tmp.Close(); err != nil {
		return oops.With("path", tmpName).Wrapf(ErrIO, "close staged output: %v", err)
	}

	perm := opts.Perm
	if perm == 0 {
		perm = DefaultFilePermissions
	}
	if err := t.fs.Chmod(tmpName, perm); err != nil {
		return oops.With("path", tmpName).Wrapf(ErrIO, "chmod staged output: %v", err)
	}
	if err := t.fs.Rename(tmpName, outputPath); err != nil {
		return oops.With("path", outputPath).Wrapf(ErrIO, "install output %s: %v", outputPath, err)
	}
	committed = true

	log.WithFields(logger.Fields{
		"at":        "Transformer.Transform",
		"template":  templatePath,
		"output":    outputPath,
		"lines":     total,
		"rewritten": rewritten,
	}).Debug("generated file from template")
	return nil
}

func (t *Transformer) copyLines(in io.Reader, out io.Writer, table Table, opts Options) (rewritten, total int, err error) {
	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)
	endsWithNewline := true

	for {
		raw, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return rewritten, total, readErr
		}
		if raw == "" && readErr == io.EOF {
			break
		}

		line, term := splitTerminator(raw)
		result := table.Apply(line)
		if result != line {
			rewritten++
		}
		total++
		if _, err := w.WriteString(result + term); err != nil {
			return rewritten, total, err
		}
		endsWithNewline = term != ""

		if readErr == io.EOF {
			break
		}
	}

	if opts.CommentPrefix != "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		if !endsWithNewline {
			if _, err := w.WriteString("\n"); err != nil {
				return rewritten, total, err
			}
		}
		trailer := opts.CommentPrefix + "AUTO-CONFIGURED: " + now().Format(time.RFC3339) + "\n"
		if _, err := w.WriteString(trailer); err != nil {
			return rewritten, total, err
		}
	}
	return rewritten, total, w.Flush()
}

// splitTerminator separates a raw line from its "\n" or "\r\n" ending.
func splitTerminator(raw string) (line, term string) {
	switch {
	case strings.HasSuffix(raw, "\r\n"):
		return raw[:len(raw)-2], "\r\n"
	case strings.HasSuffix(raw, "\n"):
		return raw[:len(raw)-1], "\n"
	default:
		return raw, ""
	}
}

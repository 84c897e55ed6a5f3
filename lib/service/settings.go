package service

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/afero"
	"github.com/tungsten-replicator/configure-service/lib/dbclient"
)

// DatabaseSettings are the catalog connection details recorded in a
// generated static properties file.
type DatabaseSettings struct {
	Credentials dbclient.Credentials
	// Service is the service.name value; empty when the file has none.
	Service string
}

var (
	dbHostPattern     = regexp.MustCompile(`^replicator\.global\.db\.host=\s*(\S*)`)
	dbPortPattern     = regexp.MustCompile(`^replicator\.global\.db\.port=\s*(\S*)`)
	dbUserPattern     = regexp.MustCompile(`^replicator\.global\.db\.user=\s*(\S*)`)
	dbPasswordPattern = regexp.MustCompile(`^replicator\.global\.db\.password=\s*(\S*)`)
	serviceNamePat    = regexp.MustCompile(`^service\.name=\s*(\S*)`)
)

// ReadDatabaseSettings scans a static properties file for the catalog
// host, port, user, password and service name. Only these five keys are
// recognised; later occurrences win.
func ReadDatabaseSettings(fs afero.Fs, path string) (DatabaseSettings, error) {
	f, err := fs.Open(path)
	if err != nil {
		return DatabaseSettings{}, oops.With("path", path).Wrapf(ErrIO, "open static properties: %v", err)
	}
	defer f.Close()

	var s DatabaseSettings
	targets := []struct {
		re  *regexp.Regexp
		dst *string
	}{
		{dbHostPattern, &s.Credentials.Host},
		{dbPortPattern, &s.Credentials.Port},
		{dbUserPattern, &s.Credentials.User},
		{dbPasswordPattern, &s.Credentials.Password},
		{serviceNamePat, &s.Service},
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for _, target := range targets {
			if m := target.re.FindStringSubmatch(line); m != nil {
				*target.dst = m[1]
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return DatabaseSettings{}, oops.With("path", path).Wrapf(ErrIO, "read static properties: %v", err)
	}
	return s, nil
}

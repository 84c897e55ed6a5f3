package dbclient

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// ErrCommandFailed is returned when the client exits non-zero or cannot start.
var ErrCommandFailed = oops.New("database client command failed")

// DefaultBinary is the client looked up on PATH.
const DefaultBinary = "mysql"

// Credentials locate and authenticate against a MySQL server.
type Credentials struct {
	Host     string
	Port     string
	User     string
	Password string
}

// Runner executes a program; it exists so tests can observe invocations.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the program with os/exec and returns combined output.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// MySQL drops databases through the mysql client.
type MySQL struct {
	Binary string
	Run    Runner
}

// NewMySQL returns a client using DefaultBinary and ExecRunner.
func NewMySQL() *MySQL {
	return &MySQL{Binary: DefaultBinary, Run: ExecRunner}
}

func (m *MySQL) binary() string {
	if m.Binary == "" {
		return DefaultBinary
	}
	return m.Binary
}

// DropStatement is the SQL executed by DropDatabase.
func DropStatement(database string) string {
	return "DROP DATABASE IF EXISTS " + database
}

func (m *MySQL) args(c Credentials, database string) []string {
	return []string{
		"-u" + c.User,
		"-p" + c.Password,
		"-h" + c.Host,
		"-P" + c.Port,
		"-e", DropStatement(database),
	}
}

// DropDatabase runs DROP DATABASE IF EXISTS for database. The client is
// invoked directly, not through a shell.
func (m *MySQL) DropDatabase(ctx context.Context, c Credentials, database string) error {
	run := m.Run
	if run == nil {
		run = ExecRunner
	}

	log.WithFields(logger.Fields{
		"at":       "MySQL.DropDatabase",
		"host":     c.Host,
		"port":     c.Port,
		"user":     c.User,
		"database": database,
	}).Debug("dropping service database")

	out, err := run(ctx, m.binary(), m.args(c, database)...)
	if err != nil {
		return oops.
			With("database", database, "host", c.Host, "output", strings.TrimSpace(string(out))).
			Wrapf(ErrCommandFailed, "drop database %s: %v", database, err)
	}
	return nil
}

// Command renders the equivalent shell command for manual use.
func (m *MySQL) Command(c Credentials, database string) string {
	return fmt.Sprintf("%s -u%s -p%s -h%s -P%s -e '%s'",
		m.binary(), c.User, c.Password, c.Host, c.Port, DropStatement(database))
}

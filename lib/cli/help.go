package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/tungsten-replicator/configure-service/lib/config"
)

var generalOptions = [][2]string{
	{"-C, --create", "Create a new replication service"},
	{"-D, --delete", "Delete an existing replication service"},
	{"-U, --update", "Update an existing replication service"},
	{"-c, --config file", "Sets name of config file (default: " + config.DefaultConfigFile + ")"},
	{"    --home dir", "Replicator home directory (default: current directory)"},
	{"-h, --help", "Displays help message"},
	{"-V, --verbose", "Verbose output"},
	{"    --clear-dynamic", "Clear dynamic properties on service update"},
}

// writeUsage prints the usage text. Service options show their current
// value, resolved from the config file named on the command line together
// with any overrides already given.
func writeUsage(out io.Writer, fs afero.Fs, v *viper.Viper, configFile string) {
	r := newConsoleReporter(out)

	fmt.Fprintln(out, "Usage: configure-service {-C|-D|-U} [options] service-name")
	r.Divider()
	fmt.Fprintln(out, "General options:")
	for _, o := range generalOptions {
		fmt.Fprintf(out, "%-22s %s\n", o[0], o[1])
	}
	r.Divider()
	fmt.Fprintln(out, "Service options:")

	cfg, err := config.NewResolver(fs).Resolve(configFile, config.Baseline(), config.OverridesFromViper(v))
	if err != nil {
		fmt.Fprintf(out, "(Unable to load defaults from config file: %s)\n", configFile)
	} else {
		fmt.Fprintf(out, "(Defaults shown from config file: %s)\n", configFile)
	}
	for _, p := range config.Parameters() {
		current := ""
		if cfg != nil {
			current = cfg.Get(p.DisplayKey)
		}
		fmt.Fprintf(out, "--%-26s %s [%s]\n", p.Flag, p.Usage, current)
	}
}

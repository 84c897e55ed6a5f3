package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tungsten-replicator/configure-service/lib/config"
	"github.com/tungsten-replicator/configure-service/lib/dbclient"
	"github.com/tungsten-replicator/configure-service/lib/properties"
	"github.com/tungsten-replicator/configure-service/lib/service"
)

var log = logger.GetGoI2PLogger()

// Deps are the collaborators of the command. Zero fields fall back to the
// host filesystem, the mysql client and the wall clock.
type Deps struct {
	Fs      afero.Fs
	Dropper service.DatabaseDropper
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Dropper == nil {
		d.Dropper = dbclient.NewMySQL()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type operation int

const (
	opNone operation = iota
	opCreate
	opDelete
	opUpdate
)

type options struct {
	create       bool
	delete       bool
	update       bool
	configFile   string
	home         string
	verbose      bool
	clearDynamic bool
}

func (o *options) operation() operation {
	switch {
	case o.create:
		return opCreate
	case o.delete:
		return opDelete
	case o.update:
		return opUpdate
	}
	return opNone
}

func (op operation) String() string {
	switch op {
	case opCreate:
		return "create"
	case opDelete:
		return "delete"
	case opUpdate:
		return "update"
	}
	return "none"
}

// Execute runs the command against the host system.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd(Deps{})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewRootCmd builds the configure-service command.
func NewRootCmd(deps Deps) *cobra.Command {
	deps = deps.withDefaults()
	v := config.NewViper()
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "configure-service {-C|-D|-U} [options] service-name",
		Short:         "Create, update or delete a replication service",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return run(cmd.Context(), cmd.OutOrStdout(), deps, v, opts, name)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&opts.create, "create", "C", false, "Create a new replication service")
	flags.BoolVarP(&opts.delete, "delete", "D", false, "Delete an existing replication service")
	flags.BoolVarP(&opts.update, "update", "U", false, "Update an existing replication service")
	flags.StringVarP(&opts.configFile, "config", "c", config.DefaultConfigFile, "Sets name of config file")
	flags.StringVar(&opts.home, "home", ".", "Replicator home directory")
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "Verbose output")
	flags.BoolVar(&opts.clearDynamic, "clear-dynamic", false, "Clear dynamic properties on service update")
	cmd.MarkFlagsMutuallyExclusive("create", "delete", "update")

	for _, p := range config.Parameters() {
		flags.String(p.Flag, "", p.Usage)
		if err := v.BindPFlag(p.Key, flags.Lookup(p.Flag)); err != nil {
			panic(oops.Wrapf(err, "bind flag %s", p.Flag))
		}
	}

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		writeUsage(c.OutOrStdout(), deps.Fs, v, opts.configFile)
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		writeUsage(c.OutOrStderr(), deps.Fs, v, opts.configFile)
		return nil
	})
	return cmd
}

func run(ctx context.Context, out io.Writer, deps Deps, v *viper.Viper, opts *options, name string) error {
	r := newConsoleReporter(out)
	r.Header("Tungsten Replication Service Configuration")

	op := opts.operation()
	if op == opNone {
		return ErrNoOperation
	}

	overrides := config.OverridesFromViper(v)
	if opts.verbose {
		r.Infof("Loading config file: %s", opts.configFile)
	}
	cfg, err := config.NewResolver(deps.Fs).Resolve(opts.configFile, config.Baseline(), overrides)
	if err != nil {
		return err
	}
	if opts.verbose {
		if err := dumpConfig(out, cfg); err != nil {
			return err
		}
	}

	log.WithFields(logger.Fields{
		"at":        "cli.run",
		"phase":     "dispatch",
		"service":   name,
		"operation": op.String(),
		"overrides": overrides.Len(),
	}).Debug("running service operation")

	m := service.NewManager(deps.Fs, opts.home, cfg,
		service.WithDropper(deps.Dropper),
		service.WithReporter(r),
		service.WithClock(deps.Now),
	)

	switch op {
	case opCreate:
		err = m.Create(ctx, name)
	case opDelete:
		err = m.Delete(ctx, name)
	case opUpdate:
		err = m.Update(ctx, name, service.UpdateOptions{ClearDynamic: opts.clearDynamic})
	}
	if err != nil {
		return err
	}

	if opts.verbose {
		fmt.Fprintf(out, "\nFinished at %s\n", deps.Now().Format(time.RFC3339))
	}
	return nil
}

// dumpConfig writes the resolved configuration as YAML with passwords masked.
func dumpConfig(out io.Writer, cfg *config.Resolved) error {
	shown := properties.New()
	for _, k := range cfg.Keys() {
		value := cfg.Get(k)
		if strings.Contains(k, "password") && value != "" {
			value = "********"
		}
		shown.Set(k, value)
	}

	fmt.Fprintln(out, "Resolved configuration:")
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(shown); err != nil {
		return oops.Wrapf(err, "render resolved configuration")
	}
	return enc.Close()
}

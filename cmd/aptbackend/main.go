// aptbackend drives the backend against a cache snapshot from the
// command line, mirroring the daemon's job API one subcommand per
// role. It exists for development and for scripted smoke tests on a
// real system snapshot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/backend"
	"github.com/imz/PackageKit/pkg/pk"
)

// The failure itself is reported through the emitter; the error only
// sets the exit code.
var errJobFailed = errors.New("job failed")

type options struct {
	configPath   string
	snapshotPath string
	filters      []string
	simulate     bool
	onlyDownload bool
	autoRemove   bool
	recursive    bool
	offline      bool
	verbose      bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "aptbackend",
		Short:         "run package transaction roles against a cache snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "/etc/aptbackend.conf", "backend configuration file")
	pf.StringVarP(&opts.snapshotPath, "snapshot", "s", "/var/cache/aptbackend/cache.yaml", "cache snapshot to load")
	pf.StringSliceVarP(&opts.filters, "filter", "f", nil, "result filters (installed, ~installed, devel, gui, free, downloaded, newest, ...)")
	pf.BoolVar(&opts.simulate, "simulate", false, "compute and report changes without committing them")
	pf.BoolVar(&opts.onlyDownload, "download-only", false, "fetch archives but do not commit")
	pf.BoolVar(&opts.autoRemove, "autoremove", false, "also remove dependencies that become unneeded")
	pf.BoolVarP(&opts.recursive, "recursive", "r", false, "follow the dependency closure")
	pf.BoolVar(&opts.offline, "offline", false, "treat the network as unavailable")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress events")

	root.AddCommand(
		roleCmd(opts, "resolve <name-or-id>...", "resolve names to package ids", pk.RoleResolve, true),
		roleCmd(opts, "search <term>...", "search package names", pk.RoleSearchName, false),
		roleCmd(opts, "search-details <term>...", "search names, summaries and descriptions", pk.RoleSearchDetails, false),
		roleCmd(opts, "search-group <group>...", "list packages in daemon groups", pk.RoleSearchGroup, false),
		roleCmd(opts, "get-packages", "list every known package", pk.RoleGetPackages, false),
		roleCmd(opts, "get-details <package-id>...", "show package details", pk.RoleGetDetails, true),
		roleCmd(opts, "get-updates", "list pending updates", pk.RoleGetUpdates, false),
		roleCmd(opts, "get-update-detail <package-id>...", "show update details", pk.RoleGetUpdateDetail, true),
		roleCmd(opts, "get-depends <package-id>...", "list dependencies", pk.RoleGetDepends, true),
		roleCmd(opts, "get-requires <package-id>...", "list reverse dependencies", pk.RoleGetRequires, true),
		roleCmd(opts, "what-provides <query>...", "resolve soname, codec or mimetype queries", pk.RoleWhatProvides, false),
		roleCmd(opts, "install <package-id>...", "install packages", pk.RoleInstallPackages, true),
		roleCmd(opts, "remove <package-id>...", "remove packages", pk.RoleRemovePackages, true),
		roleCmd(opts, "update <package-id>...", "update packages", pk.RoleUpdatePackages, true),
		roleCmd(opts, "refresh", "refresh the package cache", pk.RoleRefreshCache, false),
		roleCmd(opts, "repair", "repair a half-finished transaction", pk.RoleRepairSystem, false),
	)

	return root
}

// roleCmd builds one subcommand per daemon role; asIDs routes the
// arguments through the package-id channel instead of free-form values.
func roleCmd(opts *options, use, short string, role pk.Role, asIDs bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRole(cmd.Context(), opts, role, args, asIDs)
		},
	}
}

func buildJob(opts *options, role pk.Role, args []string, asIDs bool) *pk.Job {
	var filters pk.Filter
	for _, name := range opts.filters {
		filters |= pk.ParseFilter(name)
	}

	var flags pk.TransactionFlag
	if opts.simulate {
		flags |= pk.TransactionFlagSimulate
	}

	if opts.onlyDownload {
		flags |= pk.TransactionFlagOnlyDownload
	}

	job := &pk.Job{
		Role:        role,
		Filters:     filters,
		Flags:       flags,
		Locale:      os.Getenv("LANG"),
		ProxyHTTP:   os.Getenv("http_proxy"),
		ProxyFTP:    os.Getenv("ftp_proxy"),
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
		Online:      !opts.offline,
		AutoRemove:  opts.autoRemove,
		Recursive:   opts.recursive,
	}

	if asIDs {
		job.PackageIDs = args
	} else {
		job.Values = args
	}

	return job
}

func runRole(ctx context.Context, opts *options, role pk.Role, args []string, asIDs bool) error {
	log := logrus.New()
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := backend.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	// The snapshot flag also tells a refresh where to rebuild from.
	cfg.SnapshotPath = opts.snapshotPath

	cache, err := apt.LoadSnapshot(opts.snapshotPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := buildJob(opts, role, args, asIDs)
	aptJob := backend.NewAptJob(cache, job, pk.NewLogEmitter(log), cfg, log)
	defer aptJob.Done()

	if !aptJob.Init(ctx) || !aptJob.Run(ctx) {
		return errJobFailed
	}

	return nil
}

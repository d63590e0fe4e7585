package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/shelfscribe/internal/config"
	"github.com/blackwell-systems/shelfscribe/internal/logging"
	"github.com/blackwell-systems/shelfscribe/internal/storage"
	"github.com/blackwell-systems/shelfscribe/internal/store"
	"github.com/blackwell-systems/shelfscribe/internal/tui"
	"github.com/blackwell-systems/shelfscribe/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Commands annotated with skipShelf run without opening the shelf data.
const skipShelf = "skip-shelf"

var (
	cfg        *config.Config
	logger     = zap.NewNop()
	adapter    *storage.Adapter
	shelfStore *store.Store
	notifier   *tui.Notifier

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagVerbose       bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shelfscribe",
		Short: "Track barcoded notebooks on a grid of shelf slots",
		Long: `shelfscribe keeps an inventory of barcoded notebooks stored on a shelf
laid out as a grid of slots (column C, level L).

Run 'shelfscribe' with no arguments to open the interactive shelf view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runShelfView()
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/shelfscribe/config.yml)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Write debug entries to the log file")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(cfg.Log.Level, cfg.Log.File, flagVerbose)
		if err != nil {
			return err
		}
		logger.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", appVersion))

		if skipsShelf(cmd) {
			return nil
		}
		return openShelf(cmd == cmd.Root() && tui.ShouldUseTUI(cmd))
	}

	root.AddCommand(
		newGridCmd(),
		newListCmd(),
		newSearchCmd(),
		newSetCmd(),
		newAddCmd(),
		newDeleteCmd(),
		newMoveCmd(),
		newImportCmd(),
		newExportCmd(),
		newResetCmd(),
		newConfigCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	closeShelf()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func skipsShelf(cmd *cobra.Command) bool {
	if cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == cobra.ShellCompNoDescRequestCmd {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipShelf] == "true" {
			return true
		}
	}
	return false
}

// openShelf opens the configured backend and loads the shelf. The
// interactive view gets the configured flag windows and a notifier; other
// commands delete immediately and print storage errors as warnings.
func openShelf(interactive bool) error {
	backend, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("opening %s storage in %s: %w", cfg.Storage.Backend, cfg.Storage.Dir, err)
	}
	adapter = storage.NewAdapter(backend, logger)
	notifier = nil

	opts := store.Options{
		UpdatedWindow: cfg.Flash.Updated,
		DeletedWindow: -1,
		Logger:        logger,
		OnError: func(err error) {
			warn("%v", err)
		},
	}
	if interactive {
		notifier = tui.NewNotifier()
		opts.DeletedWindow = cfg.Flash.Deleted
		opts.OnChange = notifier.Changed
		opts.OnError = notifier.Failed
	}

	// A load failure has been reported through OnError; carry on with
	// the empty shelf.
	shelfStore, _ = store.Open(adapter, opts)
	return nil
}

// closeShelf flushes pending work and releases the backend.
func closeShelf() {
	if shelfStore != nil {
		if err := shelfStore.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
		shelfStore = nil
	}
	if adapter != nil {
		if err := adapter.Close(); err != nil {
			logger.Warn("closing storage", zap.Error(err))
		}
		adapter = nil
	}
	_ = logger.Sync()
}

func runShelfView() error {
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	behavior, err := cfg.CloseBehavior()
	if err != nil {
		return err
	}
	return tui.RunApp(tui.Options{
		Store:         shelfStore,
		Notifier:      notifier,
		Watcher:       adapter,
		Layout:        layout,
		ShowAll:       cfg.Grid.ShowAll,
		CloseBehavior: behavior,
		Logger:        logger,
	})
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

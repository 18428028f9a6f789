package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ananyev/kithwatch/internal/config"
	"github.com/ananyev/kithwatch/internal/daemon"
)

var daemonPoll bool

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().BoolVar(&daemonPoll, "poll", false, "Use polling instead of fsnotify (for NFS inboxes)")
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Process assessment requests from the inbox directory",
	Long: "Watches the inbox for assessment-request JSON files, runs detection and\n" +
		"intervention for each, and writes a result file to the outbox.\n" +
		"Runs until interrupted.",
	RunE: runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	st := openStore(cfg)
	if st != nil {
		defer st.Close()
	}

	detector := buildDetector(cfg)
	orchestrator := buildOrchestrator(cfg, st)

	var assessStore daemon.AssessmentStore
	if st != nil {
		assessStore = st
	}

	dirs := daemon.DirConfig{
		Inbox:  cfg.Daemon.Inbox,
		Outbox: cfg.Daemon.Outbox,
		State:  cfg.Daemon.State,
	}
	processor := daemon.NewProcessor(dirs, detector, orchestrator, assessStore)

	d, err := daemon.New(daemon.Config{
		Dirs:         dirs,
		PollMode:     daemonPoll || cfg.Daemon.Poll,
		PollInterval: cfg.Daemon.PollInterval,
	}, processor)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return d.Run(ctx)
}

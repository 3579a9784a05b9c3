package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentviz/agentviz/internal/agent"
	"github.com/agentviz/agentviz/internal/config"
	"github.com/agentviz/agentviz/internal/store"
)

var (
	snapshotStorePath string
	snapshotSaveInput string
	snapshotListLimit int
)

func init() {
	snapshotCmd.PersistentFlags().StringVar(&snapshotStorePath, "store", "", "Snapshot store path (default: config store_path)")

	snapshotSaveCmd.Flags().StringVarP(&snapshotSaveInput, "input", "i", "", "Snapshot JSON file ('-' for stdin)")
	snapshotListCmd.Flags().IntVar(&snapshotListLimit, "limit", 20, "Maximum snapshots to list (0 = all)")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the local snapshot store",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a snapshot file into the store",
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

func openStore() *store.DB {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	db, err := store.Open(storePath(cfg, snapshotStorePath))
	if err != nil {
		exitWithError(ExitError, "opening snapshot store: %v", err)
	}
	return db
}

// SaveResponse is the JSON response for snapshot save.
type SaveResponse struct {
	Status      string `json:"status"`
	ID          int64  `json:"id"`
	Agents      int    `json:"agents"`
	Connections int    `json:"connections"`
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	var snap *agent.Snapshot
	var err error

	if snapshotSaveInput == "" || snapshotSaveInput == "-" {
		snap, err = agent.DecodeSnapshot(os.Stdin)
	} else {
		var f *os.File
		f, err = os.Open(snapshotSaveInput)
		if err != nil {
			exitWithError(ExitDataError, "opening snapshot: %v", err)
		}
		defer f.Close()
		snap, err = agent.DecodeSnapshot(f)
	}
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	db := openStore()
	defer db.Close()

	id, err := db.Save(snap, time.Now())
	if err != nil {
		exitWithError(ExitError, "saving snapshot: %v", err)
	}

	if humanOutput {
		fmt.Printf("Saved snapshot %d (%d agents, %d connections)\n", id, len(snap.Agents), len(snap.Connections))
		return nil
	}
	return outputJSON(SaveResponse{
		Status:      "saved",
		ID:          id,
		Agents:      len(snap.Agents),
		Connections: len(snap.Connections),
	})
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	db := openStore()
	defer db.Close()

	infos, err := db.List(snapshotListLimit)
	if err != nil {
		exitWithError(ExitError, "listing snapshots: %v", err)
	}

	if humanOutput {
		for _, info := range infos {
			fmt.Printf("%d  %s  %d agents, %d connections\n",
				info.ID, info.TakenAt, info.Agents, info.Connections)
		}
		return nil
	}
	if infos == nil {
		infos = []store.SnapshotInfo{}
	}
	return outputJSON(infos)
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid snapshot id %q", args[0])
	}

	db := openStore()
	defer db.Close()

	snap, err := db.Load(id)
	if err != nil {
		exitWithError(ExitError, "loading snapshot: %v", err)
	}
	if snap == nil {
		exitWithError(ExitDataError, "snapshot %d not found", id)
	}
	return outputJSON(snap)
}

package session

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ehrlich-b/knn-service/internal/knn"
	"github.com/ehrlich-b/knn-service/internal/remoteio"
)

// Command is the closed set of menu choices. A plain switch over this
// enumeration replaces the heap-allocated polymorphic command objects
// the original implementation used.
type Command int

const (
	CmdUpload Command = iota + 1
	CmdAlgorithmSettings
	CmdClassify
	CmdDisplayResults
	CmdDownloadResults
	CmdConfusionMatrix
)

var menu = []struct {
	cmd         Command
	description string
}{
	{CmdUpload, "Upload Files"},
	{CmdAlgorithmSettings, "Algorithm Settings"},
	{CmdClassify, "Classify Data"},
	{CmdDisplayResults, "Display Results"},
	{CmdDownloadResults, "Download Results"},
	{CmdConfusionMatrix, "Display Confusion Matrix"},
}

const exitLabel = "Exit"

// Machine drives one session's menu loop against an Endpoint and a
// shared, read-only training set.
type Machine struct {
	Endpoint  remoteio.Endpoint
	Shared    *knn.DataSet
	Settings  *Settings
	Log       *slog.Logger
	SessionID string
}

// NewMachine builds a Machine with fresh default Settings.
func NewMachine(ep remoteio.Endpoint, shared *knn.DataSet, log *slog.Logger, sessionID string) *Machine {
	return &Machine{
		Endpoint:  ep,
		Shared:    shared,
		Settings:  NewSettings(),
		Log:       log,
		SessionID: sessionID,
	}
}

// Run executes the menu loop until the client exits or the transport
// fails. A transport error is returned to the caller, which treats it
// as session-fatal and reclaims resources; a clean exit returns nil.
func (m *Machine) Run() error {
	for {
		if err := m.displayMenu(); err != nil {
			return err
		}
		choice, err := m.Endpoint.Prompt()
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(menu)+1 {
			if err := m.Endpoint.Display(remoteio.ErrorLine("Invalid Command") + "\n"); err != nil {
				return err
			}
			continue
		}
		if n == len(menu)+1 {
			m.log("exit")
			return m.Endpoint.Terminate()
		}
		cmd := menu[n-1].cmd
		m.log(cmdName(cmd))
		if err := m.dispatch(cmd); err != nil {
			return err
		}
	}
}

func (m *Machine) displayMenu() error {
	for i, item := range menu {
		if err := m.Endpoint.Display(fmt.Sprintf("%d.\t%s\n", i+1, item.description)); err != nil {
			return err
		}
	}
	return m.Endpoint.Display(fmt.Sprintf("%d.\t%s\n", len(menu)+1, exitLabel))
}

func (m *Machine) dispatch(cmd Command) error {
	switch cmd {
	case CmdUpload:
		return m.upload()
	case CmdAlgorithmSettings:
		return m.algorithmSettings()
	case CmdClassify:
		return m.classify()
	case CmdDisplayResults:
		return m.displayResults()
	case CmdDownloadResults:
		return m.downloadResults()
	case CmdConfusionMatrix:
		return m.confusionMatrix()
	default:
		return nil
	}
}

func (m *Machine) log(command string) {
	if m.Log == nil {
		return
	}
	m.Log.Debug("command dispatched", "session_id", m.SessionID, "command", command)
}

func cmdName(c Command) string {
	switch c {
	case CmdUpload:
		return "upload"
	case CmdAlgorithmSettings:
		return "algorithm-settings"
	case CmdClassify:
		return "classify"
	case CmdDisplayResults:
		return "display-results"
	case CmdDownloadResults:
		return "download-results"
	case CmdConfusionMatrix:
		return "confusion-matrix"
	default:
		return "unknown"
	}
}

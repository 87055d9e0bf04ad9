// Command streamforge renders the StreamForge deployment files from a YAML
// config, walks through creating that config, and answers streaming
// questions in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edirooss/streamforge/pkg/fmtt"
)

var debug bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "streamforge",
		Short:         "Generate the Termux + GitHub Actions files that stream Alist media to Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging and full error chains")

	root.AddCommand(newRenderCmd(), newInitCmd(), newChatCmd(), newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if debug {
			fmtt.PrintErrChainDebug(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(zap.WarnLevel)
	if debug {
		logConfig.Level.SetLevel(zap.DebugLevel)
	}
	return zap.Must(logConfig.Build())
}

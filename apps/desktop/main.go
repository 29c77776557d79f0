package main

import (
	"context"
	"embed"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"github.com/bowlrms/desktop/pkg/version"
)

//go:embed all:frontend/dist
var assets embed.FS

// Splash window size. The main view size comes from config.
const (
	splashWidth  = 400
	splashHeight = 300
)

const singleInstanceID = "com.bowlrms.desktop"

var (
	flagURL    string
	flagSave   bool
	flagConfig string
	flagNoTray bool
)

var rootCmd = &cobra.Command{
	Use:          "bowlrms",
	Short:        "BowlRMS desktop shell",
	Long:         `Opens the BowlRMS web application in a desktop window, showing a splash screen until the server answers.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Load this URL instead of the configured target")
	rootCmd.PersistentFlags().BoolVar(&flagSave, "save", false, "Save --url as the configured target")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the config file")
	rootCmd.Flags().BoolVar(&flagNoTray, "no-tray", false, "Disable system tray icon")

	rootCmd.AddCommand(cmdCheck, cmdVersion)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func runWindow(ctx context.Context) error {
	env, err := loadEnvironment(os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	target := resolveTarget(ctx, env)
	app := NewApp(env, target)
	app.noTray = flagNoTray || !env.cfg.Tray.Enabled

	return wails.Run(&options.App{
		Title:       version.AppName,
		Width:       splashWidth,
		Height:      splashHeight,
		AlwaysOnTop: true,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 18, G: 24, B: 38, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		// The remote application calls the navigation bindings once presented.
		BindingsAllowedOrigins: originOf(target),
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               singleInstanceID,
			OnSecondInstanceLaunch: app.onSecondInstanceLaunch,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			ProgramName:         "bowlrms",
		},
	})
}

package cmd

import (
	"fmt"

	"textcat/internal/apihandlers"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the categorization HTTP API",
	Long: `Starts an HTTP server exposing POST /api/categorize, which accepts
{"text": "..."} and responds with the category as a JSON string.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		cfg := appInstance.Config

		// Flags override the config file.
		flags := cmd.Flags()
		if flags.Changed("addr") {
			cfg.Server.Addr, _ = flags.GetString("addr")
		}
		if flags.Changed("port") {
			cfg.Server.Port, _ = flags.GetString("port")
		}

		// Fail at startup rather than on the first request.
		if err := appInstance.ValidateModel(); err != nil {
			return err
		}

		gin.SetMode(cfg.Server.Mode)
		router := apihandlers.NewRouter(apihandlers.NewAPIHandler(appInstance))

		listenAddr := cfg.ListenAddr()
		log.Infof("Starting textcat API server on http://%s (model %s)", listenAddr, cfg.Categorizer.Model)

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			log.Errorf("Failed to run API server: %v", err)
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "0.0.0.0", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().String("port", "5000", "Port to listen on (overrides server.port)")
}

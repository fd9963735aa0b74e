package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hal9000y/exec-assistant/internal/apiclient"
	"github.com/hal9000y/exec-assistant/internal/command"
	"github.com/hal9000y/exec-assistant/internal/config"
)

func askCmd(envFile *string) *cobra.Command {
	var (
		server string
		token  string
	)

	cmd := &cobra.Command{
		Use:   "ask <command>",
		Short: "Send a free-text command to a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				cfg, err := config.Load(*envFile)
				if err != nil {
					return fmt.Errorf("config.Load failed: %w", err)
				}
				server = cfg.APIBase()
			}
			if token == "" {
				token = os.Getenv("EXEC_ASSISTANT_TOKEN")
			}

			var authorization string
			if token != "" {
				authorization = "Bearer " + token
			}

			resp, err := apiclient.New(server, nil).Do(cmd.Context(), http.MethodPost, "/command", authorization,
				command.Request{Command: strings.Join(args, " ")})
			if err != nil {
				return fmt.Errorf("client.Do failed: %w", err)
			}

			var out bytes.Buffer
			if err := json.Indent(&out, resp.Body, "", "  "); err != nil {
				out.Reset()
				out.Write(resp.Body)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())

			if !resp.OK() {
				return fmt.Errorf("server responded %d", resp.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "API base URL, defaults to the configured one")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token, defaults to $EXEC_ASSISTANT_TOKEN")

	return cmd
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/config"
	"github.com/dmitrymomot/billingpanel/pkg/redis"
	"github.com/dmitrymomot/billingpanel/svc/directory"
)

// newPublishCmd pushes a subscription record to running servers, the way a
// billing webhook consumer would.
func newPublishCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "publish OWNER_ID",
		Short: "Publish a subscription update read from a JSON file or stdin",
		Long: "Publish a subscription update on the billing updates channel.\n" +
			"The record is read as JSON from --file or stdin; the literal null moves the owner to the free tier.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("owner id: %w", err)
			}

			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			sub, err := readSubscription(in)
			if err != nil {
				return err
			}

			var cfg appConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if !cfg.Redis.Enabled() {
				return ErrRedisRequired
			}
			client, err := redis.Connect(cmd.Context(), cfg.Redis)
			if err != nil {
				return err
			}
			defer client.Close()

			u := directory.Update{OwnerID: ownerID, Subscription: sub}
			if err := directory.Publish(cmd.Context(), client, cfg.UpdatesChannel, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published update for %s on %s\n", ownerID, cfg.UpdatesChannel)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the subscription record (default stdin)")
	return cmd
}

func readSubscription(r io.Reader) (*billing.Subscription, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyRecord
	}
	var sub *billing.Subscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return sub, nil
}

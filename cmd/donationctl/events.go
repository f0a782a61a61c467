package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	config "github.com/satsangkankpul/donation-services/configs"
	"github.com/satsangkankpul/donation-services/internal/comm"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/broker"
	natscli "github.com/satsangkankpul/donation-services/internal/nats"
)

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print donation events published on NATS until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			n, err := natscli.Connect(cfg.NatsURL, cfg.NatsToken)
			if err != nil {
				return fmt.Errorf("connect to NATS: %w", err)
			}
			defer n.Conn.Close()

			out := cmd.OutOrStdout()
			b := broker.NewBroker(n.Conn, cfg.NatsSubject)
			sub, err := b.Subscribe(func(m *comm.WSMessage) {
				if m.Type != comm.TypeDonationCreated {
					return
				}
				ev := comm.DonationEvent{}
				if err := json.Unmarshal(m.Data, &ev); err != nil {
					fmt.Fprintf(out, "bad event: %v\n", err)
					return
				}
				fmt.Fprintf(out, "%s  %-8s Rs %s  %s  %s\n",
					ev.Date.Local().Format("2006-01-02 15:04:05"), ev.PaymentMethod, ev.AmountINR, ev.FullName, ev.ID)
			})
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()
			fmt.Fprintf(out, "listening on %s\n", cfg.NatsSubject)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
}

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubxmsg"
	"github.com/taoyao-code/ubx-gateway/internal/serialport"
)

func fileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "file <path>",
		Short: "Decode every frame in a capture file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			out := newPrinter(cmd.OutOrStdout(), opts.format, opts.nav)
			d := newDumper(opts, out)
			if err := d.copyFrom(in); err != nil {
				return err
			}
			d.finish()
			return out.Close()
		},
	}
}

func hexCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hex <bytes>...",
		Short: "Decode frames from hex text (whitespace allowed)",
		Example: `  ubxdump hex b5 62 05 01 02 00 06 01 0f 38
  ubxdump hex --format json b5620a0400000e34`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(strings.Join(strings.Fields(strings.Join(args, " ")), ""))
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}
			out := newPrinter(cmd.OutOrStdout(), opts.format, opts.nav)
			d := newDumper(opts, out)
			if err := d.feed(raw); err != nil {
				return err
			}
			d.finish()
			return out.Close()
		},
	}
}

func serialCmd(opts *options) *cobra.Command {
	var (
		cfg   cfgpkg.SerialConfig
		polls []string
	)
	cmd := &cobra.Command{
		Use:   "serial",
		Short: "Decode frames from a receiver on a serial port until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			pollFrames, err := ubxmsg.PollAll(polls)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := newPrinter(cmd.OutOrStdout(), opts.format, opts.nav)
			defer out.Close()
			return runSerial(ctx, opts, cfg, serialport.Open, pollFrames, out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.Device, "device", "d", "/dev/ttyACM0", "serial device")
	f.IntVarP(&cfg.Baud, "baud", "b", 38400, "baud rate")
	f.DurationVar(&cfg.ReadTimeout, "read-timeout", 500*time.Millisecond, "per-read timeout")
	f.StringSliceVar(&polls, "poll", []string{"MON-VER"}, "messages to poll after the port opens")
	return cmd
}

// runSerial 每次(重新)打开串口都使用新的解码器，避免拼接断线前后的残帧
func runSerial(ctx context.Context, opts *options, cfg cfgpkg.SerialConfig, open serialport.Opener, polls [][]byte, out *printer) error {
	reader := serialport.NewReader(cfg, open, opts.logger)
	var d *dumper
	reader.SetHandlers(
		func(p serialport.Port) {
			d = newDumper(opts, out)
			for _, poll := range polls {
				if _, err := p.Write(poll); err != nil {
					opts.logger.Warn("poll write failed", zap.Error(err))
					return
				}
			}
		},
		func(b []byte) {
			if err := d.feed(b); err != nil {
				opts.logger.Error("output failed", zap.Error(err))
			}
		},
		func() { d.finish() },
	)
	return reader.Run(ctx)
}

func encodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <ID> [payload-hex]",
		Short: "Build a frame and print its wire bytes",
		Example: `  ubxdump encode MON-VER
  ubxdump encode CFG-MSG 01 07 01
  ubxdump encode --format json ACK-ACK 0601`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := ubx.ParseID(args[0])
			if !ok {
				return fmt.Errorf("unknown message id %q", args[0])
			}
			payload, err := hex.DecodeString(strings.Join(args[1:], ""))
			if err != nil {
				return fmt.Errorf("invalid payload hex: %w", err)
			}
			f, err := ubx.Build(id, payload)
			if err != nil {
				return err
			}
			if opts.format == formatText {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), f.String())
				return err
			}
			out := newPrinter(cmd.OutOrStdout(), opts.format, true)
			if err := out.Print(f); err != nil {
				return err
			}
			return out.Close()
		},
	}
}

func catalogCmd(opts *options) *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List every named message identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var want ubx.Class
			if class != "" {
				c, ok := ubx.ParseClass(class)
				if !ok {
					return fmt.Errorf("unknown class %q", class)
				}
				want = c
			}
			w := cmd.OutOrStdout()
			for _, id := range ubx.KnownIDs() {
				if class != "" && id.Class() != want {
					continue
				}
				if _, err := fmt.Fprintf(w, "%-12s 0x%02x 0x%02x\n", id, id.Class().Byte(), id.Byte()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&class, "class", "c", "", "only list identities of this class (e.g. MON)")
	return cmd
}

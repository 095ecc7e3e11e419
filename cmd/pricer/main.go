package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jwaldner/vanilla/internal/config"
	"github.com/jwaldner/vanilla/internal/logger"
	"github.com/jwaldner/vanilla/internal/report"
	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

type contractFlags struct {
	Spot       float64
	Strike     float64
	Expiry     float64
	Rate       float64
	Volatility float64
	OptionType string
	Premium    float64
}

func (f contractFlags) contract() (vanilla.OptionContract, error) {
	optionType, err := vanilla.ParseOptionType(f.OptionType)
	if err != nil {
		return vanilla.OptionContract{}, err
	}

	c := vanilla.OptionContract{
		Spot:       f.Spot,
		Strike:     f.Strike,
		Expiry:     f.Expiry,
		Rate:       f.Rate,
		Volatility: f.Volatility,
		Type:       optionType,
	}
	return c, c.Validate()
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	flags := &contractFlags{}
	engine := vanilla.NewEngineForced(cfg.Engine.ExecutionMode).WithWorkers(cfg.Engine.Workers)

	root := &cobra.Command{
		Use:           "pricer",
		Short:         "Black-Scholes pricing, Greeks and sensitivity curves for a European option",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	d := cfg.Defaults
	pf := root.PersistentFlags()
	pf.Float64Var(&flags.Spot, "spot", d.Spot, "Current price of the underlying")
	pf.Float64Var(&flags.Strike, "strike", d.Strike, "Strike price")
	pf.Float64Var(&flags.Expiry, "expiry", d.TimeToMaturity, "Time to maturity in years")
	pf.Float64Var(&flags.Rate, "rate", d.RiskFreeRate, "Continuously compounded risk-free rate")
	pf.Float64Var(&flags.Volatility, "vol", d.Volatility, "Annualised volatility")
	pf.StringVar(&flags.OptionType, "type", d.OptionType, "Option type: call or put")
	pf.Float64Var(&flags.Premium, "premium", d.Premium, "Premium paid, for the payoff diagram")

	root.AddCommand(
		&cobra.Command{
			Use:   "price",
			Short: "Print the fair value",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := flags.contract()
				if err != nil {
					return err
				}
				price, err := vanilla.PriceContract(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", price)
				return nil
			},
		},
		&cobra.Command{
			Use:   "greeks",
			Short: "Print the Greeks table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := flags.contract()
				if err != nil {
					return err
				}
				greeks, err := vanilla.ComputeGreeks(c)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report.GreeksTable(greeks))
				return nil
			},
		},
		newSweepCmd(cfg, engine, flags),
		&cobra.Command{
			Use:   "payoff",
			Short: "Print the P&L at expiry as CSV, with breakeven and current P&L",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				optionType, err := vanilla.ParseOptionType(flags.OptionType)
				if err != nil {
					return err
				}
				result, err := vanilla.PayoffCurve(flags.Spot, flags.Strike, flags.Premium, optionType)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "# breakeven=%.4f current_pnl=%.4f\n", result.Breakeven, result.CurrentPnL)
				return report.WriteCurveCSV(out, result.Curve)
			},
		},
		&cobra.Command{
			Use:   "smile",
			Short: "Print the illustrative volatility smile centred on --strike",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				curve, err := vanilla.VolSmile(flags.Strike, cfg.Defaults.SmileBaseVol)
				if err != nil {
					return err
				}
				return report.WriteCurveCSV(cmd.OutOrStdout(), curve)
			},
		},
	)

	return root
}

func newSweepCmd(cfg *config.Config, engine *vanilla.Engine, flags *contractFlags) *cobra.Command {
	var out string
	var export bool

	cmd := &cobra.Command{
		Use:       "sweep <spot|delta|volatility|time|rate>",
		Short:     "Evaluate a parameter sweep and write it as CSV",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: vanilla.SweepKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			c, err := flags.contract()
			if err != nil {
				return err
			}

			sweep, _ := vanilla.LookupSweep(kind)
			curve, err := sweep(engine, cmd.Context(), c)
			if err != nil {
				return err
			}

			switch {
			case out != "":
				path, err := report.ExportCurveCSV(filepath.Dir(out), filepath.Base(out), curve)
				if err != nil {
					return err
				}
				logger.Info.Printf("📁 Exported %s sweep to %s", kind, path)
				fmt.Fprintln(cmd.OutOrStdout(), path)
			case export:
				name := config.FormatCSVFilename(cfg.CSV.FilenameFormat, kind, c.Type.String(), time.Now().Format("20060102_150405"))
				path, err := report.ExportCurveCSV(cfg.CSV.OutputDir, name, curve)
				if err != nil {
					return err
				}
				logger.Info.Printf("📁 Exported %s sweep to %s", kind, path)
				fmt.Fprintln(cmd.OutOrStdout(), path)
			default:
				return report.WriteCurveCSV(cmd.OutOrStdout(), curve)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the curve to this CSV file")
	cmd.Flags().BoolVar(&export, "export", false, "Write the curve to the configured CSV directory")
	return cmd
}

func run(cfg *config.Config, args []string, out io.Writer) error {
	root := newRootCmd(cfg)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(context.Background())
}

func main() {
	cfg := config.Load()
	logger.InitWithWriter(cfg.Logging.LogLevel, os.Stderr)

	if err := run(cfg, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("pricer: %v", err)
	}
}

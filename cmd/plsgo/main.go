package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"plsgo/adapters/gsvd"
	"plsgo/adapters/resample"
	"plsgo/app"
	"plsgo/domain/pls"
	"plsgo/internal/config"
	"plsgo/internal/profiling"
	"plsgo/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func main() {
	// Optional .env file; environment variables win.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "plsgo",
		Short: "PLS resampling inference: permutation and bootstrap tests",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newVariantsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var variant string
	var seed int64
	var numPerm, numBoot, rotate int
	var rows, cols, behaviors, conditions int
	var groups []int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a PLS analysis on generated demo data",
		Long: `Run a PLS analysis end to end on a generated demo matrix: reference
decomposition, latent variables, permutation test, and bootstrap test.

Defaults come from the environment (PLS_SEED, PLS_NUM_PERM, PLS_NUM_BOOT,
PLS_ROTATE, PLS_CI_LOWER, PLS_CI_UPPER, PLS_CONCURRENCY), optionally via a
.env file; flags override.

Example: plsgo run --variant mct --rows 12 --cols 4 --groups 4 --conditions 3 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts := cfg.Options()
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if cmd.Flags().Changed("num-perm") {
				opts.NumPerm = numPerm
			}
			if cmd.Flags().Changed("num-boot") {
				opts.NumBoot = numBoot
			}
			if cmd.Flags().Changed("rotate") {
				opts.RotateMethod = pls.RotateMethod(rotate)
			}

			return runAnalysis(cmd.Context(), pls.Variant(variant), rows, cols, behaviors, conditions, groups, opts)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "mct", "PLS variant tag (mct, rb, ...)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic resampling")
	cmd.Flags().IntVar(&numPerm, "num-perm", 1000, "Permutation test iterations")
	cmd.Flags().IntVar(&numBoot, "num-boot", 1000, "Bootstrap test iterations")
	cmd.Flags().IntVar(&rotate, "rotate", 0, "Rotation method (0=none, 1=procrustes, 2=derived)")
	cmd.Flags().IntVar(&rows, "rows", 12, "Demo matrix row count")
	cmd.Flags().IntVar(&cols, "cols", 4, "Demo matrix column count")
	cmd.Flags().IntVar(&behaviors, "behaviors", 2, "Demo outcome column count (behavioral variants)")
	cmd.Flags().IntVar(&conditions, "conditions", 3, "Number of conditions")
	// Task PLS rejects multi-group input, so the default stays single-group.
	cmd.Flags().IntSliceVar(&groups, "groups", []int{4}, "Subjects per group")

	return cmd
}

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the recognized PLS variant tags",
		Run: func(cmd *cobra.Command, args []string) {
			for _, v := range []pls.Variant{
				pls.VariantMeanCenterTask,
				pls.VariantNonRotatedTask,
				pls.VariantBehavioral,
				pls.VariantMultiblock,
				pls.VariantNonRotatedBehavior,
				pls.VariantNonRotatedMultiblock,
			} {
				fmt.Printf("  %-5s %s\n", v, v.Name())
			}
		},
	}
}

func runAnalysis(ctx context.Context, variant pls.Variant, rows, cols, behaviors, conditions int, groups []int, opts pls.Options) error {
	cond := pls.NewCondOrder(groups, conditions)
	if total := cond.TotalRows(); total != rows {
		return fmt.Errorf("groups %v with %d conditions imply %d rows, got --rows %d",
			groups, conditions, total, rows)
	}

	x := demoMatrix(rows, cols, opts.Seed)
	var y *mat.Dense
	if variant == pls.VariantBehavioral || variant == pls.VariantNonRotatedBehavior {
		y = demoMatrix(rows, behaviors, opts.Seed+1)
	}

	service := app.NewAnalysisService(
		gsvd.New(),
		resample.New(),
		func(seed int64) ports.RNG { return resample.NewSeedStream(seed) },
	)

	analysis, err := service.Run(ctx, app.AnalysisRequest{
		Variant:       variant,
		X:             x,
		Y:             y,
		GroupSizes:    groups,
		NumConditions: conditions,
		Options:       opts,
	})
	if err != nil {
		return err
	}

	printAnalysis(analysis)
	return nil
}

// demoMatrix generates a reproducible standard-normal matrix.
func demoMatrix(rows, cols int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}

func printAnalysis(a *app.Analysis) {
	fmt.Printf("\n%s\n%s\n\n", a.Variant.Name(), strings.Repeat("=", len(a.Variant.Name())))
	if data, err := json.MarshalIndent(a.Manifest, "", "  "); err == nil {
		fmt.Printf("Manifest:\n%s\n\n", data)
	}
	fmt.Printf("Singular values: %v\n\n", a.Decomposition.S)
	fmt.Println(a.Resample.String())
	fmt.Printf("Normal-reference p-values of bootstrap ratios:\n%v\n",
		mat.Formatted(profiling.NormalPValues(a.Resample.Bootstrap.Ratios)))
}

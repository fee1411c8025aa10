package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <submission.json>",
	Short: "Run the evaluation pipeline for a single submission file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read submission file")
		}

		var sub model.LeadSubmission
		if err := json.Unmarshal(data, &sub); err != nil {
			return eris.Wrap(err, "parse submission")
		}

		if err := validator.New().Struct(&sub); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					fmt.Fprintf(os.Stderr, "invalid field %s: failed %s\n", fe.Field(), fe.Tag())
				}
			}
			return eris.Wrap(err, "validate submission")
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Orchestrator.Run(ctx, &sub)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("evaluation complete",
			zap.String("company", sub.Company),
			zap.Bool("success", result.Success),
			zap.Int("errors", len(result.Errors)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

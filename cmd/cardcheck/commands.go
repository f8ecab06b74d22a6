package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/dto"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/luhn"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/validation"
	apperrors "github.com/dharshanac/ZeilCardValidatorApi/pkg/errors"
)

var errCardInvalid = errors.New("card number is invalid")

type validateResult struct {
	CardNumber string   `json:"cardNumber"`
	IsValid    bool     `json:"isValid"`
	Errors     []string `json:"errors,omitempty"`
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "cardcheck",
		Short:         "Check payment card numbers with the Luhn checksum",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(newValidateCmd(), newMaskCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var (
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <card number>...",
		Short: "Validate a card number and print it masked",
		Long: `Validate a card number with the Luhn checksum.

Arguments are joined with spaces, so "4242 4242 4242 4242" may be passed
quoted or as separate words. The command exits with status 1 when the
number is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := strings.Join(args, " ")

			result := validateResult{
				CardNumber: luhn.Mask(number),
				IsValid:    luhn.Validate(number),
			}

			if strict {
				messages, err := requestErrors(number)
				if err != nil {
					return err
				}
				if len(messages) > 0 {
					result.IsValid = false
					result.Errors = messages
				}
			}

			if err := printResult(cmd.OutOrStdout(), result, jsonOutput); err != nil {
				return err
			}
			if !result.IsValid {
				return errCardInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&strict, "strict", false, "Also apply the API request rules (length and digits)")
	return cmd
}

func newMaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mask <card number>...",
		Short: "Print a card number with all but the last four characters hidden",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), luhn.Mask(strings.Join(args, " ")))
			return nil
		},
	}
}

func requestErrors(number string) ([]string, error) {
	rv, err := validation.NewRequestValidator()
	if err != nil {
		return nil, err
	}

	err = rv.ValidateRequest(&dto.ValidateCardRequest{CardNumber: number})
	if err == nil {
		return nil, nil
	}

	fields := apperrors.FieldErrors(err)
	if fields == nil {
		return nil, err
	}

	var messages []string
	for _, fieldMessages := range fields {
		messages = append(messages, fieldMessages...)
	}
	return messages, nil
}

func printResult(w io.Writer, result validateResult, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	status := "invalid"
	if result.IsValid {
		status = "valid"
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", result.CardNumber, status); err != nil {
		return err
	}
	for _, msg := range result.Errors {
		if _, err := fmt.Fprintf(w, "  %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

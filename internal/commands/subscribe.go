package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subx/internal/api"
	"subx/internal/models"
	"subx/internal/util"
)

var (
	methodType     string
	cardNumber     string
	expirationDate string
	cvc            string
	validateCard   bool
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <plan>",
	Short: "Purchase a subscription plan",
	Long: `Purchase a subscription plan. Card details come from flags; any detail left
out falls back to the built-in test card.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan := args[0]
		details := paymentDetailsFromFlags()

		if validateCard {
			if err := details.Validate(time.Now()); err != nil {
				return err
			}
		}

		title := fmt.Sprintf("Subscribing to %s with card %s", plan, util.MaskCardNumber(details.CardNumber))
		return runSubmission(cmd, title, func(ctx context.Context, s *api.Submitter) <-chan api.Result {
			return s.Submit(ctx, plan, details)
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the current subscription",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, "Cancelling subscription", func(ctx context.Context, s *api.Submitter) <-chan api.Result {
			return s.SubmitCancel(ctx)
		})
	},
}

var renewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Renew the current subscription",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, "Renewing subscription", func(ctx context.Context, s *api.Submitter) <-chan api.Result {
			return s.SubmitRenew(ctx)
		})
	},
}

var changePlanCmd = &cobra.Command{
	Use:   "change-plan <plan>",
	Short: "Move the current subscription to another plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan := args[0]
		return runSubmission(cmd, "Changing plan to "+plan, func(ctx context.Context, s *api.Submitter) <-chan api.Result {
			return s.SubmitChangePlan(ctx, plan)
		})
	},
}

func paymentDetailsFromFlags() models.PaymentDetails {
	return models.PaymentDetails{
		MethodType:     methodType,
		CardNumber:     cardNumber,
		ExpirationDate: expirationDate,
		CVC:            cvc,
	}.WithDefaults()
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(renewCmd)
	rootCmd.AddCommand(changePlanCmd)

	subscribeCmd.Flags().StringVar(&methodType, "method-type", "", "Payment method type (default credit_card)")
	subscribeCmd.Flags().StringVar(&cardNumber, "card-number", "", "Card number as NNNN-NNNN-NNNN-NNNN")
	subscribeCmd.Flags().StringVar(&expirationDate, "expiration-date", "", "Card expiration date as MM/YY")
	subscribeCmd.Flags().StringVar(&cvc, "cvc", "", "Card security code")
	subscribeCmd.Flags().BoolVar(&validateCard, "validate", false, "Check the card details locally before sending")
}

package gateway

import (
	"bambora-bridge/internal/logger"

	"go.uber.org/zap"
)

// ValidateResult is the single funnel every gateway outcome passes through.
// Transport errors and gateway-level rejections are classified the same way:
// ok is false and message holds a human-readable explanation. The reference
// ties the log line to the order or transaction the call was made for;
// operation marks calls that move money.
func ValidateResult(resp Response, err error, reference string, operation bool) (bool, string) {
	log := logger.L().With(
		zap.String("reference", reference),
		zap.Bool("operation", operation),
	)

	if err != nil {
		log.Warn("Gateway call failed", zap.Error(err))
		return false, err.Error()
	}

	if resp == nil {
		log.Warn("Gateway returned no response")
		return false, "no response received from the payment gateway"
	}

	meta := resp.ResultMeta()
	if meta.Result {
		return true, ""
	}

	message := meta.Message.Merchant
	if message == "" {
		message = meta.Message.EndUser
	}
	if message == "" {
		message = "the payment gateway rejected the request"
	}

	log.Warn("Gateway rejected request", zap.String("message", message))
	return false, message
}

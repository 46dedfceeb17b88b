package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEvaluatePayoutThreshold(t *testing.T) {
	settings := testSettings() // 阈值 50，自动审批开启

	below, err := decimal.NewFromString("49.99")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	decision := EvaluatePayout(below, settings)
	if decision.Eligible || decision.AutoApproved {
		t.Fatalf("expected not eligible below threshold, got %+v", decision)
	}

	decision = EvaluatePayout(decimal.NewFromInt(50), settings)
	if !decision.Eligible {
		t.Fatalf("expected eligible at exact threshold")
	}
	if !decision.AutoApproved {
		t.Fatalf("expected auto approval at exact threshold")
	}
}

func TestEvaluatePayoutLargeBalanceNeedsManualReview(t *testing.T) {
	settings := testSettings()
	decision := EvaluatePayout(decimal.NewFromInt(51), settings)
	if !decision.Eligible {
		t.Fatalf("expected eligible above threshold")
	}
	if decision.AutoApproved {
		t.Fatalf("balance above threshold must not auto approve")
	}
}

func TestEvaluatePayoutAutoApprovalDisabled(t *testing.T) {
	settings := testSettings()
	settings.AutoApproval = false
	decision := EvaluatePayout(decimal.NewFromInt(50), settings)
	if !decision.Eligible {
		t.Fatalf("expected eligible at threshold")
	}
	if decision.AutoApproved {
		t.Fatalf("auto approval disabled, expected manual review")
	}
}

package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"HoyoSentinel/internal/calculator"
	"HoyoSentinel/internal/hoyolab"
	"HoyoSentinel/internal/model"
	"HoyoSentinel/internal/recorder"
)

const timeLayout = "2006-01-02 15:04 MST"

// FormatDuration renders d as HH:MM:SS; hours may exceed 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// FormatEvent renders a recovery event as a Telegram HTML message.
func FormatEvent(account string, ev model.Event) string {
	acct := html.EscapeString(account)
	switch e := ev.(type) {
	case model.FullEvent:
		return fmt.Sprintf("🔋 <b>%s</b> is full (%d)\nFull since %s",
			acct, e.MaxAmount, e.FullTime.Format(timeLayout))
	case model.UnitGainedEvent:
		return fmt.Sprintf("⬆️ <b>%s</b> recovering: next %d/%d (%.0f%%)\nNext unit in %s",
			acct, e.NewAmount, e.MaxAmount, e.Percentage*100, FormatDuration(e.TimeToNextUnit))
	case model.ChangedEvent:
		return fmt.Sprintf("🔄 <b>%s</b> %d → %d/%d (%+d, %.0f%%)",
			acct, e.PreviousAmount, e.CurrentAmount, e.MaxAmount, e.Delta, e.Percentage*100)
	}
	return fmt.Sprintf("<b>%s</b> %s", acct, ev.Kind())
}

var adviceText = map[calculator.AdviceCode]string{
	calculator.AdviceFull:         "⚠️ Full, recovery is being wasted",
	calculator.AdviceNearlyFull:   "💡 Nearly full, a good time to spend",
	calculator.AdviceLongRecovery: "🕒 Over 20h until full",
	calculator.AdviceUnitSoon:     "⏳ Next unit in under 10 minutes",
}

// FormatSummary renders the /stamina report line for one account.
func FormatSummary(account string, s calculator.Summary, advice []calculator.AdviceCode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(account))
	fmt.Fprintf(&b, "Amount: %d/%d (%.1f%%)\n", s.CurrentAmount, s.MaxAmount, s.Percentage*100)
	if s.Full {
		b.WriteString("Status: full\n")
	} else {
		fmt.Fprintf(&b, "Full in: %s (at %s)\n", FormatDuration(s.RecoveryDuration), s.FullRecoveryTime.Format(timeLayout))
		fmt.Fprintf(&b, "Next unit in: %s\n", FormatDuration(s.TimeToNextUnit))
	}
	fmt.Fprintf(&b, "Observed: %s\n", s.ObservedAt.Format(timeLayout))
	for _, a := range advice {
		if text, ok := adviceText[a]; ok {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatClaim renders the outcome of a daily check-in.
func FormatClaim(account string, res *model.RewardResult, err error) string {
	acct := html.EscapeString(account)
	switch {
	case err == nil && res != nil:
		return fmt.Sprintf("🎁 <b>%s</b> check-in: %s ×%d", acct, html.EscapeString(res.Name), res.Amount)
	case errors.Is(err, hoyolab.ErrAlreadyClaimed):
		return fmt.Sprintf("✅ <b>%s</b> already checked in today", acct)
	case errors.Is(err, hoyolab.ErrCaptcha):
		return fmt.Sprintf("🧩 <b>%s</b> check-in blocked by captcha, claim it manually", acct)
	case err != nil:
		return fmt.Sprintf("❌ <b>%s</b> check-in failed: %s", acct, html.EscapeString(err.Error()))
	}
	return fmt.Sprintf("<b>%s</b> check-in: no result", acct)
}

// FormatEventHistory renders stored events, newest first.
func FormatEventHistory(account string, recs []recorder.EventRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> recent events\n", html.EscapeString(account))
	if len(recs) == 0 {
		b.WriteString("none recorded\n")
	}
	for _, r := range recs {
		fmt.Fprintf(&b, "%s  %s\n", r.CreatedAt.Format(timeLayout), r.Kind)
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "<b>HoyoSentinel</b>\n" +
		"/stamina - current recovery status of every account\n" +
		"/events - latest recorded events\n" +
		"/claim - run the daily check-in now\n" +
		"/help - this message"
}

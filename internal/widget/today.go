// Package widget renders the "today" card shared by the CLI, the
// dashboard, the HTTP API and the MCP server.
package widget

import (
	"fmt"
	"strings"

	scheduledto "studyroutine/internal/modules/schedule/dto"
)

// NoActiveRoutine is shown when no week has started yet.
const NoActiveRoutine = "no active routine"

// Today renders the current week as markdown.
func Today(week scheduledto.WeekOutput, goal string) string {
	var sb strings.Builder
	sb.WriteString("## 📌 오늘의 루틴\n\n")
	fmt.Fprintf(&sb, "**%s %s** · %s · %s 시작\n\n", week.Month, week.WeekLabel, week.Subject, week.StartDate)
	if strings.TrimSpace(goal) != "" {
		sb.WriteString("🎯 " + strings.TrimSpace(goal) + "\n\n")
	}
	sb.WriteString("### 세부 계획\n\n")
	sb.WriteString(orPlaceholder(week.PlanText, "_(세부 계획 없음)_") + "\n\n")
	sb.WriteString("### Gemini 질문 예시\n\n")
	sb.WriteString(orPlaceholder(week.SampleQuestion, "_(예시 없음)_") + "\n\n")
	if week.Done {
		sb.WriteString("✅ 완료")
	} else {
		sb.WriteString("⏳ 진행 중")
	}
	sb.WriteString("\n")
	return sb.String()
}

// Reminder renders one undone week as a single line.
func Reminder(week scheduledto.WeekOutput) string {
	plan := strings.Join(strings.Fields(week.PlanText), " ")
	if plan == "" {
		plan = "(세부 계획 없음)"
	}
	return fmt.Sprintf("📅 %s %s  📝 %s  %s", week.Month, week.WeekLabel, week.Subject, plan)
}

// AllDone is shown when no reminders are left.
const AllDone = "🎉 모든 학습 루틴을 완료하셨습니다!"

func orPlaceholder(text, placeholder string) string {
	if strings.TrimSpace(text) == "" {
		return placeholder
	}
	return strings.TrimSpace(text)
}

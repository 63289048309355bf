package recurrence

// Unbounded marks a duration without an end date.
const Unbounded = -1

// durationDays 将疗程标签映射为天数，英文与越南语标签互为同义词。
// 未识别的标签视为无限期，保证不会误隐藏任何一次服药。
var durationDays = map[string]int{
	"1 Day":    1,
	"One Day":  1,
	"1 Ngày":   1,
	"1 Week":   7,
	"1 Tuần":   7,
	"2 Weeks":  14,
	"2 Tuần":   14,
	"1 Month":  30,
	"1 Tháng":  30,
	"3 Months": 90,
	"3 Tháng":  90,
	"6 Months": 180,
	"6 Tháng":  180,
	"1 Year":   365,
	"1 Năm":    365,
	"Ongoing":  Unbounded,
	"Liên tục": Unbounded,
}

// DurationDays returns the day count for a duration label, or Unbounded when the
// label is empty, open-ended or not recognized.
func DurationDays(label string) int {
	if days, ok := durationDays[label]; ok {
		return days
	}
	return Unbounded
}

// IsOneDay reports whether the label describes a single-day course.
func IsOneDay(label string) bool {
	return DurationDays(label) == 1
}

// RuleKind 描述频率规则的判定方式
type RuleKind int

const (
	// RuleAlways 每天显示
	RuleAlways RuleKind = iota
	// RulePeriod 距开始日期的天数能被 Period 整除时显示
	RulePeriod
	// RuleDayOfMonth 与开始日期同一天（按月）显示
	RuleDayOfMonth
	// RuleQuarterly 与开始日期同一天且相隔月数为 3 的倍数时显示
	RuleQuarterly
	// RuleYearly 与开始日期同月同日时显示
	RuleYearly
)

// Rule 是频率标签解析后的规则
type Rule struct {
	Kind   RuleKind
	Period int
}

// frequencyRules 是唯一的频率标签表。
// "Every N days" 表示周期为 N 天（diffDays % N == 0）；
// 越南语 "Cách K ngày" 表示间隔 K 天，即周期为 K+1。
var frequencyRules = map[string]Rule{
	"Daily":     {Kind: RuleAlways},
	"Hàng ngày": {Kind: RuleAlways},
	"Hằng ngày": {Kind: RuleAlways},

	"Every Other Day": {Kind: RulePeriod, Period: 2},
	"Every 2 days":    {Kind: RulePeriod, Period: 2},
	"Cách ngày":       {Kind: RulePeriod, Period: 2},
	"Cách 1 ngày":     {Kind: RulePeriod, Period: 2},

	"Every 3 days": {Kind: RulePeriod, Period: 3},
	"Cách 2 ngày":  {Kind: RulePeriod, Period: 3},

	"Every 4 days": {Kind: RulePeriod, Period: 4},
	"Cách 3 ngày":  {Kind: RulePeriod, Period: 4},

	"Weekly":    {Kind: RulePeriod, Period: 7},
	"Hàng tuần": {Kind: RulePeriod, Period: 7},

	"Biweekly":         {Kind: RulePeriod, Period: 14},
	"Bi-weekly":        {Kind: RulePeriod, Period: 14},
	"Hai tuần một lần": {Kind: RulePeriod, Period: 14},

	"Monthly":    {Kind: RuleDayOfMonth},
	"Hàng tháng": {Kind: RuleDayOfMonth},

	"Quarterly": {Kind: RuleQuarterly},
	"Hàng quý":  {Kind: RuleQuarterly},

	"Yearly":   {Kind: RuleYearly},
	"Hàng năm": {Kind: RuleYearly},
}

// FrequencyRule resolves a frequency label. Unknown labels resolve to RuleAlways.
func FrequencyRule(label string) Rule {
	if rule, ok := frequencyRules[label]; ok {
		return rule
	}
	return Rule{Kind: RuleAlways}
}

// KnownFrequency reports whether the label is in the canonical table.
func KnownFrequency(label string) bool {
	_, ok := frequencyRules[label]
	return ok
}

// KnownDuration reports whether the label is in the canonical table.
func KnownDuration(label string) bool {
	_, ok := durationDays[label]
	return ok
}

package locale

import "fmt"

// Pick returns the text matching the request language, defaulting to Vietnamese.
func Pick(language, english, vietnamese string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if english != "" {
			return english
		}
		return vietnamese
	}
	if vietnamese != "" {
		return vietnamese
	}
	return english
}

// label pairs: English form first, Vietnamese second.
var (
	slotLabels = [][2]string{
		{"Before Breakfast", "Trước Bữa Sáng"},
		{"After Breakfast", "Sau Bữa Sáng"},
		{"Before Lunch", "Trước Bữa Trưa"},
		{"After Lunch", "Sau Bữa Trưa"},
		{"Before Dinner", "Trước Bữa Tối"},
		{"After Dinner", "Sau Bữa Tối"},
		{"Before Bed", "Trước Khi Ngủ"},
	}
	durationLabels = [][2]string{
		{"One Day", "1 Ngày"},
		{"1 Day", "1 Ngày"},
		{"1 Week", "1 Tuần"},
		{"2 Weeks", "2 Tuần"},
		{"1 Month", "1 Tháng"},
		{"3 Months", "3 Tháng"},
		{"6 Months", "6 Tháng"},
		{"1 Year", "1 Năm"},
		{"Ongoing", "Liên tục"},
	}
	frequencyLabels = [][2]string{
		{"Daily", "Hàng ngày"},
		{"Every Other Day", "Cách ngày"},
		{"Every 2 days", "Cách 1 ngày"},
		{"Every 3 days", "Cách 2 ngày"},
		{"Every 4 days", "Cách 3 ngày"},
		{"Weekly", "Hàng tuần"},
		{"Biweekly", "Hai tuần một lần"},
		{"Monthly", "Hàng tháng"},
		{"Quarterly", "Hàng quý"},
		{"Yearly", "Hàng năm"},
	}
)

func translate(pairs [][2]string, language, label string) string {
	english := NormalizeLanguage(language) == LanguageEnglish
	for _, pair := range pairs {
		if pair[0] != label && pair[1] != label {
			continue
		}
		if english {
			return pair[0]
		}
		return pair[1]
	}
	return label
}

// SlotLabel 翻译时段标签（如 After Breakfast），未知标签原样返回
func SlotLabel(language, label string) string {
	return translate(slotLabels, language, label)
}

// DurationLabel 翻译疗程标签
func DurationLabel(language, label string) string {
	if label == "" {
		return Pick(language, "Not specified", "Không xác định")
	}
	return translate(durationLabels, language, label)
}

// FrequencyLabel 翻译频率标签
func FrequencyLabel(language, label string) string {
	if label == "" {
		return Pick(language, "Not specified", "Không xác định")
	}
	return translate(frequencyLabels, language, label)
}

// StartsOn 疗程尚未开始的提示
func StartsOn(language, date string) string {
	return Pick(language,
		fmt.Sprintf("Treatment for this medicine starts on %s", date),
		fmt.Sprintf("Lịch điều trị của thuốc này bắt đầu vào %s", date))
}

// EndedOn 疗程已结束的提示
func EndedOn(language, date string) string {
	return Pick(language,
		fmt.Sprintf("Treatment for this medicine ended on %s", date),
		fmt.Sprintf("Thuốc này đã kết thúc điều trị vào %s", date))
}

// NextDoseIn 非服药日的提示
func NextDoseIn(language string, days int) string {
	if days == 1 {
		return Pick(language,
			"No dose today. Next dose is tomorrow.",
			"Không cần uống thuốc này hôm nay. Lần uống kế tiếp là ngày mai.")
	}
	return Pick(language,
		fmt.Sprintf("No dose today. Next dose is in %d days.", days),
		fmt.Sprintf("Không cần uống thuốc này hôm nay. Lần uống kế tiếp là sau %d ngày.", days))
}

// NoUpcomingDose 在可预见范围内没有下一次服药时使用
func NoUpcomingDose(language string) string {
	return Pick(language, "No dose today.", "Không cần uống thuốc này hôm nay.")
}

package view

import "strings"

// MedicineIconOption describes a selectable icon for the add-medicine form.
type MedicineIconOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	SVG   string `json:"svg"`
}

type medicineIconAsset struct {
	Key     string
	LabelEN string
	LabelVI string
	SVG     string
	// Tintable 为 true 时图标使用 iconColor 着色，否则保留自带配色
	Tintable bool
}

// DefaultMedicineIcon 为未知或缺失 iconType 的回退图标
const DefaultMedicineIcon = "pill"

var (
	medicineIconDefinitions = []medicineIconAsset{
		{Key: "pill", LabelEN: "Pill", LabelVI: "Viên thuốc", Tintable: true, SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M10.5 20.5 3.5 13.5a4.95 4.95 0 1 1 7-7l7 7a4.95 4.95 0 1 1-7 7Z"/><path d="m8.5 8.5 7 7"/></svg>`},
		{Key: "capsule", LabelEN: "Capsule", LabelVI: "Viên nang", Tintable: true, SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><rect x="2.5" y="8" width="19" height="8" rx="4" transform="rotate(-45 12 12)"/><path d="m9 9 6 6"/></svg>`},
		{Key: "tabletBottle", LabelEN: "Tablet bottle", LabelVI: "Lọ thuốc", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><rect x="6" y="2.5" width="12" height="4" rx="1"/><path d="M7 6.5h10v13a2 2 0 0 1-2 2H9a2 2 0 0 1-2-2v-13Z"/><path d="M7 11h10M7 16h10"/></svg>`},
		{Key: "tablets", LabelEN: "Tablets", LabelVI: "Vỉ thuốc", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><circle cx="7.5" cy="7.5" r="4.5"/><circle cx="16.5" cy="16.5" r="4.5"/><path d="M4.5 7.5h6M13.5 16.5h6"/></svg>`},
	}
	medicineIconLookup = func() map[string]medicineIconAsset {
		lookup := make(map[string]medicineIconAsset, len(medicineIconDefinitions))
		for _, icon := range medicineIconDefinitions {
			lookup[strings.ToLower(icon.Key)] = icon
		}
		return lookup
	}()
)

// MedicineIconOptions lists the selectable icons with labels in the given language.
func MedicineIconOptions(language string) []MedicineIconOption {
	options := make([]MedicineIconOption, 0, len(medicineIconDefinitions))
	for _, icon := range medicineIconDefinitions {
		options = append(options, MedicineIconOption{Key: icon.Key, Label: icon.label(language), SVG: icon.SVG})
	}
	return options
}

// NormalizeIconType 返回规范的图标键，未知值回退为 pill
func NormalizeIconType(raw string) string {
	if icon, ok := medicineIconLookup[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return icon.Key
	}
	return DefaultMedicineIcon
}

// MedicineIconSVG 返回图标 SVG；color 非空且图标可着色时写入 style
func MedicineIconSVG(iconType, color string) string {
	icon := medicineIconLookup[strings.ToLower(NormalizeIconType(iconType))]
	color = strings.TrimSpace(color)
	if color == "" || !icon.Tintable || strings.ContainsAny(color, `"<>;`) {
		return icon.SVG
	}
	return strings.Replace(icon.SVG, "<svg ", `<svg style="color:`+color+`" `, 1)
}

func (a medicineIconAsset) label(language string) string {
	if language == "en" {
		return a.LabelEN
	}
	return a.LabelVI
}

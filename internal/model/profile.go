package model

// WaterIntake 以日期为键记录当日累计饮水量（毫升）
type WaterIntake map[string]int

// MealTimes 三餐时间，格式 HH:MM
type MealTimes struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// UserProfile 用户资料，除三餐时间外均为自由文本
type UserProfile struct {
	Name      string    `json:"name"`
	Age       string    `json:"age"`
	Height    string    `json:"height"`
	Weight    string    `json:"weight"`
	MealTimes MealTimes `json:"mealTimes"`
}

// DefaultMealTimes 为引导页与资料页使用的默认三餐时间
func DefaultMealTimes() MealTimes {
	return MealTimes{Breakfast: "07:00", Lunch: "12:00", Dinner: "18:00"}
}

// DefaultProfile 返回首次启动时的默认资料
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:      "Dollay Husen",
		Age:       "25",
		MealTimes: DefaultMealTimes(),
	}
}

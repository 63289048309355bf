package main

import (
	"fmt"
	"log"
	"time"

	"github.com/medreminder/internal/config"
	"github.com/medreminder/internal/db"
	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/logging"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/recurrence"
	"github.com/medreminder/internal/service"
	"github.com/medreminder/internal/store"
)

// 演示数据生成器
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(db.DB)

	repo := store.NewRepository(store.NewGormKV(db.DB), logging.New(cfg.LogLevel, cfg.LogFormat))
	today := recurrence.FormatDate(recurrence.Today(time.Now(), time.Local))

	fmt.Println("开始生成演示数据...")

	if err := seedDemoData(repo, today); err != nil {
		log.Fatal("演示数据生成失败:", err)
	}

	fmt.Println("演示数据生成完成！")
}

type demoMedicine struct {
	input service.MedicineInput
}

func demoMedicines(today string) []demoMedicine {
	start := func(daysAgo int) string {
		day, _ := recurrence.ParseDate(today)
		return recurrence.FormatDate(day.AddDate(0, 0, -daysAgo))
	}
	return []demoMedicine{
		{
			input: service.MedicineInput{
				Name:      "Paracetamol 500mg",
				Type:      string(model.TypeMedicine),
				IconType:  "pill",
				Schedules: []string{"After Breakfast", "After Dinner"},
				StartDate: start(5),
				Duration:  "2 Weeks",
				Frequency: "Daily",
				Note:      "Uống **sau khi ăn** với nhiều nước.",
			},
		},
		{
			input: service.MedicineInput{
				Name:      "Vitamin D3",
				Type:      string(model.TypeTablet),
				IconType:  "capsule",
				IconColor: "#f59e0b",
				Schedules: []string{"After Lunch"},
				StartDate: start(10),
				Duration:  "Ongoing",
				Frequency: "Every 2 days",
			},
		},
		{
			input: service.MedicineInput{
				Name:      "Insulin",
				Type:      string(model.TypeInjection),
				IconType:  "tabletBottle",
				Schedules: []string{"Before Breakfast"},
				StartDate: start(14),
				Duration:  "1 Month",
				Frequency: "Weekly",
			},
		},
	}
}

// seedDemoData 为空库写入示例药品、打卡记录、饮水和个人资料；已有数据时跳过
func seedDemoData(repo *store.Repository, today string) error {
	medicines := service.NewMedicineService(repo, events.Nop{})
	water := service.NewWaterService(repo, events.Nop{}, service.DefaultWaterGoalML, service.DefaultWaterIncrementML)
	profiles := service.NewProfileService(repo, events.Nop{})

	existing, err := medicines.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Println("药品已存在，跳过创建")
		return nil
	}

	for _, demo := range demoMedicines(today) {
		created, err := medicines.Create(demo.input)
		if err != nil {
			return fmt.Errorf("create %s: %w", demo.input.Name, err)
		}

		// 过去的服药日全部打卡，今天保持未完成
		from, _ := recurrence.ParseDate(demo.input.StartDate)
		to, _ := recurrence.ParseDate(today)
		for _, date := range recurrence.DatesInRange(*created, from, to) {
			if date == today {
				continue
			}
			for idx := range created.Schedules {
				if _, err := medicines.ToggleTaken(created.ID, date, idx); err != nil {
					return fmt.Errorf("mark %s on %s: %w", created.Name, date, err)
				}
			}
		}
	}
	fmt.Println("✅ 示例药品创建完成")

	if _, err := water.Add(today, 750); err != nil {
		return err
	}
	fmt.Println("✅ 今日饮水记录创建完成")

	if _, err := profiles.CompleteOnboarding(&model.MealTimes{Breakfast: "07:00", Lunch: "12:00", Dinner: "18:30"}); err != nil {
		return err
	}
	fmt.Println("✅ 个人资料创建完成")
	return nil
}

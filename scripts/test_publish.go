//go:build ignore

// Публикует тестовый отчёт в stream:doleance:submitted для проверки report worker.
//
//	go run scripts/test_publish.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/doleances-service/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	text := flag.String("text", "Coupure d'eau depuis trois jours dans le quartier.", "report plain text")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовый отчёт (Analamanga, Antananarivo Renivohitra)
	report := &domain.Report{
		ID:          uuid.New(),
		SearchQuery: "Antananarivo",
		FilterValue: domain.DefaultFilter.Value,
		FilterLabel: domain.DefaultFilter.Label,
		ContentHTML: "<p>" + *text + "</p>",
		ContentText: *text,
		CreatedAt:   time.Now().UTC(),
	}
	report.SetLocation(domain.SelectedLocation{
		Name:        "Antananarivo Renivohitra",
		City:        "Antananarivo",
		Commune:     "Antananarivo Renivohitra",
		Region:      "Analamanga",
		Lat:         "-18.9100",
		Lon:         "47.5250",
		DisplayName: "Antananarivo Renivohitra, Analamanga",
	})

	event := domain.ReportSubmittedEvent{
		EventID:   uuid.New(),
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamReportSubmitted,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published report %s as message %s\n", report.ID, result)
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// rankingExportLimit is deliberately far above any realistic club size so an
// export always covers the full membership.
const rankingExportLimit = 100000

type ExportService interface {
	// ExportRankingCSV renders the full ranking for a period as CSV.
	// Returns the file name and content.
	ExportRankingCSV(ctx context.Context, period string) (string, []byte, error)
}

type exportService struct {
	ranking RankingService
}

func NewExportService(ranking RankingService) ExportService {
	return &exportService{ranking: ranking}
}

func (s *exportService) ExportRankingCSV(ctx context.Context, period string) (string, []byte, error) {
	result, err := s.ranking.BuildRanking(ctx, period, rankingExportLimit)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"position", "name", "email", "total_points", "activity_points", "adjustment_points", "activities_completed"}
	if err := writer.Write(header); err != nil {
		return "", nil, err
	}

	for _, entry := range result.Ranking {
		record := []string{
			strconv.Itoa(entry.Position),
			entry.DisplayName,
			entry.Email,
			strconv.Itoa(entry.TotalPoints),
			strconv.Itoa(entry.ActivityPoints),
			strconv.Itoa(entry.AdjustmentPoints),
			strconv.Itoa(entry.ActivitiesCompletedCount),
		}
		if err := writer.Write(record); err != nil {
			return "", nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("ranking_%s_%s.csv", result.Stats.Period, time.Now().Format("2006-01-02"))
	return filename, buf.Bytes(), nil
}

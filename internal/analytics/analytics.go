package analytics

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"classhub/internal/models"
)

// ProgressCounter counts the documents that make up a class's progress.
type ProgressCounter interface {
	CountEnrollments(ctx context.Context, classID string) (int64, error)
	CountAssignments(ctx context.Context, classID string) (int64, error)
	CountSubmissions(ctx context.Context, classID string) (int64, error)
}

// TotalsCounter counts the platform-wide totals.
type TotalsCounter interface {
	CountUsers(ctx context.Context) (int64, error)
	CountClassesByStatus(ctx context.Context, status models.ClassStatus) (int64, error)
	CountEnrollments(ctx context.Context, classID string) (int64, error)
}

// ClassProgress runs the enrollment, assignment and submission counts for a class concurrently. The first
// failing count cancels the others.
func ClassProgress(ctx context.Context, c ProgressCounter, classID string) (*models.ClassProgress, error) {
	var progress models.ClassProgress

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		progress.EnrolledCount, err = c.CountEnrollments(ctx, classID)
		return err
	})
	g.Go(func() (err error) {
		progress.AssignmentCount, err = c.CountAssignments(ctx, classID)
		return err
	})
	g.Go(func() (err error) {
		progress.SubmissionCount, err = c.CountSubmissions(ctx, classID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &progress, nil
}

// PlatformTotals counts users, approved classes and enrollments concurrently.
func PlatformTotals(ctx context.Context, c TotalsCounter) (*models.PlatformStats, error) {
	var stats models.PlatformStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = c.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalClasses, err = c.CountClassesByStatus(ctx, models.ClassApproved)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEnrollments, err = c.CountEnrollments(ctx, "")
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SummarizeRatings computes the count, mean and percentiles of the ratings in feedback. Does not need/use any
// Firebase connection.
func SummarizeRatings(classID string, feedback []*models.Feedback) models.RatingSummary {
	summary := models.RatingSummary{ClassID: classID, Count: len(feedback)}
	if len(feedback) == 0 {
		return summary
	}

	ratings := make([]float64, 0, len(feedback))
	var total float64
	for _, f := range feedback {
		ratings = append(ratings, f.Rating)
		total += f.Rating
	}

	summary.Average = total / float64(len(ratings))
	summary.Ratings = CalculatePercentiles(ratings)
	return summary
}

func CalculatePercentiles(data []float64) models.Percentiles {
	if len(data) == 0 {
		return models.Percentiles{}
	}

	sort.Float64s(data)

	calculatePercentile := func(percentile float64) float64 {
		rank := percentile / 100 * float64(len(data)-1)
		rankInt := int(rank)

		// If the rank is an integer, return the value at that index
		if rank == float64(rankInt) {
			return data[rankInt]
		}

		// Otherwise, linearly interpolate
		baseline := data[rankInt]
		interpolation := (rank - float64(rankInt)) * (data[rankInt+1] - data[rankInt])

		return baseline + interpolation
	}

	return models.Percentiles{
		P50: calculatePercentile(50),
		P90: calculatePercentile(90),
	}
}

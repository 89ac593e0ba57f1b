package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCareerPaths() map[string][]string {
	return map[string][]string{
		"Data Analyst":         {"Senior Data Analyst", "Analytics Engineer"},
		"Senior Data Analyst":  {"Analytics Engineer", "Data Science Manager"},
		"Analytics Engineer":   {"Data Engineer"},
		"Data Engineer":        {"Senior Data Engineer"},
		"Senior Data Engineer": {"Staff Data Engineer"},
	}
}

func TestRoadmapShortestPath(t *testing.T) {
	svc := NewCareerService(nil, testCareerPaths())

	roadmap, err := svc.Roadmap(context.Background(), "Data Analyst", "Data Engineer")
	require.NoError(t, err)
	require.False(t, roadmap.Direct)
	require.Equal(t, []string{"data analyst", "analytics engineer", "data engineer"}, roadmap.Path)
	require.Len(t, roadmap.Steps, 2)
	require.Equal(t, 36, roadmap.TimelineMonths)
}

func TestRoadmapDirectFallback(t *testing.T) {
	svc := NewCareerService(nil, testCareerPaths())

	roadmap, err := svc.Roadmap(context.Background(), "Data Analyst", "Product Manager")
	require.NoError(t, err)
	require.True(t, roadmap.Direct)
	require.Equal(t, []string{"data analyst", "product manager"}, roadmap.Path)
	require.Len(t, roadmap.Steps, 1)
	require.Equal(t, 18, roadmap.TimelineMonths)
}

func TestRoadmapSameRole(t *testing.T) {
	svc := NewCareerService(nil, testCareerPaths())

	roadmap, err := svc.Roadmap(context.Background(), "Data Engineer", "data engineer")
	require.NoError(t, err)
	require.False(t, roadmap.Direct)
	require.Equal(t, []string{"data engineer"}, roadmap.Path)
	require.Empty(t, roadmap.Steps)
	require.Zero(t, roadmap.TimelineMonths)
}

func TestRoadmapCaseInsensitiveLookup(t *testing.T) {
	svc := NewCareerService(nil, testCareerPaths())

	roadmap, err := svc.Roadmap(context.Background(), "data  analyst", "DATA ENGINEER")
	require.NoError(t, err)
	require.False(t, roadmap.Direct)
	require.Len(t, roadmap.Path, 3)
}

package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	ExecutionTimeout = 5 * time.Minute
	StandardRuntime  = time.Minute
	MinimumRuntime   = 10 * time.Second
	MinIterations    = 100

	ten         = 10
	hundred     = ten * ten
	thousand    = ten * hundred
	tenThousand = ten * thousand
)

// TimerManager is a subset of the testing.B tool, used to manage setup code.
type TimerManager interface {
	ResetTimer()
	StartTimer()
	StopTimer()
}

type BenchCase func(context.Context, TimerManager, int) error
type BenchFunction func(*testing.B)

func WrapCase(bench BenchCase) BenchFunction {
	name := getName(bench)
	return func(b *testing.B) {
		ctx := context.Background()
		b.ResetTimer()
		err := bench(ctx, b, b.N)
		require.NoError(b, err, "case='%s'", name)
	}
}

// RunAllCases executes every registered case outside of the testing
// framework and collects the per-case results.
func RunAllCases(ctx context.Context) []*BenchResult {
	cases := getAllCases()
	results := make([]*BenchResult, 0, len(cases))
	for _, c := range cases {
		results = append(results, c.Run(ctx))
	}
	return results
}

func getAllCases() []*CaseDefinition {
	return []*CaseDefinition{
		{
			Bench:   CanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   GlobalCanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   JSONFlatDocumentEncoding,
			Count:   tenThousand,
			Size:    10850000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   JSONFlatDocumentDecoding,
			Count:   tenThousand,
			Size:    10850000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   JSONDeepDocumentEncoding,
			Count:   tenThousand,
			Size:    27130000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   JSONDeepDocumentDecoding,
			Count:   tenThousand,
			Size:    27130000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   JSONFlatMapDecoding,
			Count:   tenThousand,
			Size:    10850000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   JSONFlatMapEncoding,
			Count:   tenThousand,
			Size:    10850000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   JSONDeepMapDecoding,
			Count:   tenThousand,
			Size:    27130000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   JSONDeepMapEncoding,
			Count:   tenThousand,
			Size:    27130000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   FlatMapTransform,
			Count:   tenThousand,
			Size:    10850000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   SingleInsertSmallDocument,
			Count:   tenThousand,
			Size:    1450000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   SingleInsertLargeDocument,
			Count:   hundred,
			Size:    1090300,
			Runtime: StandardRuntime,
		},
		{
			Bench:   SingleUpdateOneByID,
			Count:   tenThousand,
			Size:    1450000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   MultiInsertSmallDocument,
			Count:   tenThousand,
			Size:    1450000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   MultiInsertLargeDocument,
			Count:   hundred,
			Size:    1090300,
			Runtime: StandardRuntime,
		},
		{
			Bench:   MultiDeleteMany,
			Count:   tenThousand,
			Size:    1450000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   MultiMixedOrderedWrites,
			Count:   thousand,
			Size:    250000,
			Runtime: StandardRuntime,
		},
		{
			Bench:   MultiMixedUnorderedWrites,
			Count:   thousand,
			Size:    250000,
			Runtime: StandardRuntime,
		},
	}
}

package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type csvPoint struct {
	ID     int     `csv:"id"`
	Lon    float64 `csv:"lon"`
	Lat    float64 `csv:"lat"`
	Weight int     `csv:"weight"`
}

func TestCSVPoints(t *testing.T) {
	rows, closer, err := ReadCSVFromFile[csvPoint]("./testdata/points.csv", ';')
	require.NoError(t, err)
	defer closer()

	got := NewList[csvPoint](3)
	for row := range rows {
		got.Add(row)
	}
	// the "broken" line has too few fields and is skipped by the csv reader
	require.Len(t, got, 3)
	assert.Equal(t, csvPoint{1, 13.40, 52.52, 10}, got[0])
	assert.Equal(t, csvPoint{2, 13.41, 52.53, 0}, got[1])
	assert.Equal(t, 3, got[2].ID)
}

func TestCSVUnparsableRow(t *testing.T) {
	input := "id;lon;lat\nx;13.0;52.0\n4;13.5;52.5\n"
	got := NewList[csvPoint](2)
	for row := range ReadCSV[csvPoint](strings.NewReader(input), ';') {
		got.Add(row)
	}
	assert.Equal(t, List[csvPoint]{{ID: 4, Lon: 13.5, Lat: 52.5}}, got)
}

func TestCSVMissingFile(t *testing.T) {
	_, _, err := ReadCSVFromFile[csvPoint]("./testdata/missing.csv", ';')
	assert.Error(t, err)
}

func TestPriorityQueueOrder(t *testing.T) {
	pq := NewPriorityQueue[string, int32](4)
	pq.Enqueue("c", 30)
	pq.Enqueue("a", 10)
	pq.Enqueue("b", 20)

	order := NewList[string](3)
	for {
		item, ok := pq.Dequeue()
		if !ok {
			break
		}
		order.Add(item)
	}
	assert.Equal(t, List[string]{"a", "b", "c"}, order)
}

func TestFlagsReset(t *testing.T) {
	flags := NewFlags[int32](5, -1)
	*flags.Get(2) = 7
	*flags.Get(4) = 9
	assert.Equal(t, int32(7), flags.Peek(2))
	assert.Equal(t, List[int32]{2, 4}, flags.Touched())

	flags.Reset()
	assert.Equal(t, int32(-1), flags.Peek(2))
	assert.Equal(t, int32(-1), flags.Peek(4))
	assert.False(t, flags.IsTouched(2))
}

package blake2b

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// paintTestInput fills b with a repeating, non-zero byte pattern so that
// accidentally comparing against an all-zero buffer can't hide a bug.
func paintTestInput(b []byte) {
	for i := range b {
		b[i] = byte(i % 251)
	}
}

// testMaxDegree is the widest batch any Implementation drives (4, for
// avx2Impl). The exhaustive tests size their job lists from it so that they
// span more than one full batch at that width; the scheduler itself still
// runs with whatever Implementation Detect() reports on the machine running
// these tests.
const testMaxDegree = 4

func TestHashManyExhaustive(t *testing.T) {
	const n = 2*testMaxDegree - 1
	input := make([]byte, n*BlockBytes)
	paintTestInput(input)

	for startOffset := 0; startOffset < n; startOffset++ {
		inputs := make([][]byte, n)
		params := make([]*Params, n)
		for i := 0; i < n; i++ {
			chunks := (i + startOffset) % n
			inputs[i] = input[:chunks*BlockBytes]
			p := NewParams()
			p.NodeOffset = uint64(i)
			if i%2 == 1 {
				p.LastNode = true
				p.Key = []byte("foo")
			}
			params[i] = p
		}

		jobs := make([]*HashManyJob, n)
		for i := 0; i < n; i++ {
			j, err := NewHashManyJob(params[i], inputs[i])
			require.NoError(t, err)
			jobs[i] = j
		}

		HashMany(jobs)

		for i := 0; i < n; i++ {
			st, err := params[i].NewState()
			require.NoError(t, err)
			st.Update(inputs[i])
			require.Equal(t, st.Finalize(), jobs[i].ToHash(), "start offset %d, job %d", startOffset, i)
		}
	}
}

func TestUpdateManyExhaustive(t *testing.T) {
	const n = 2*testMaxDegree - 1
	input := make([]byte, n*BlockBytes)
	paintTestInput(input)

	for startOffset := 0; startOffset < n; startOffset++ {
		inputs := make([][]byte, n)
		params := make([]*Params, n)
		for i := 0; i < n; i++ {
			chunks := (i + startOffset) % n
			inputs[i] = input[:chunks*BlockBytes]
			p := NewParams()
			p.NodeOffset = uint64(i)
			if i%2 == 1 {
				p.LastNode = true
				p.Key = []byte("foo")
			}
			params[i] = p
		}

		states := make([]*State, n)
		for i := 0; i < n; i++ {
			st, err := params[i].NewState()
			require.NoError(t, err)
			states[i] = st
		}

		pairs := make([]StateInput, n)
		for i := 0; i < n; i++ {
			pairs[i] = StateInput{State: states[i], Input: inputs[i]}
		}
		// Run every input through twice, to exercise buffering across
		// repeated UpdateMany calls.
		UpdateMany(pairs)
		UpdateMany(pairs)

		for i := 0; i < n; i++ {
			ref, err := params[i].NewState()
			require.NoError(t, err)
			ref.Update(inputs[i])
			ref.Update(inputs[i])
			require.Equal(t, ref.Finalize(), states[i].Finalize(), "start offset %d, job %d", startOffset, i)
		}
	}
}

func TestHashManyToHashBeforeRunPanics(t *testing.T) {
	j, err := NewHashManyJob(NewParams(), []byte("x"))
	require.NoError(t, err)
	require.Panics(t, func() { j.ToHash() })
}

func TestHashManyRunTwicePanics(t *testing.T) {
	j, err := NewHashManyJob(NewParams(), []byte("x"))
	require.NoError(t, err)
	HashMany([]*HashManyJob{j})
	require.Panics(t, func() { HashMany([]*HashManyJob{j}) })
}

func TestHashManyKeyedEmptyInputUsesKeyBlock(t *testing.T) {
	p := NewParams()
	p.Key = []byte("k")

	j, err := NewHashManyJob(p, nil)
	require.NoError(t, err)
	HashMany([]*HashManyJob{j})

	ref, err := p.NewState()
	require.NoError(t, err)
	require.Equal(t, ref.Finalize(), j.ToHash())
}

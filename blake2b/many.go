package blake2b

// finalizeKind tells the scheduler what, if anything, to do when a job's
// input runs out: nothing (it's an interior chunk of a larger stream),
// a normal last block, or a last block that's also the last node of a tree.
type finalizeKind int

const (
	finalizeNotYet finalizeKind = iota
	finalizeRegular
	finalizeLastNode
)

// job is the scheduler's internal unit of work: a chaining value in
// progress, the count already absorbed before input, the remaining input,
// and whether/how to finalize once input runs out.
type job struct {
	words     *Words8
	count     counter128
	input     []byte
	finalize  finalizeKind
	finalized bool
}

func (j *job) isFinished() bool {
	if j.finalize == finalizeNotYet {
		return len(j.input) == 0
	}
	return j.finalized
}

// compressMany drives jobs through the widest compression kernel the
// implementation supports, keeping as many lanes busy as possible even when
// jobs have different remaining lengths: it tops a working set up to the
// target width, runs one batch, evicts whichever jobs that batch finished,
// and refills from the jobs not yet started, before dropping to a narrower
// width and eventually finishing stragglers one at a time.
func compressMany(jobs []*job, impl Implementation) {
	idx := 0
	var active []*job

	refill := func(n int) {
		for len(active) < n && idx < len(jobs) {
			active = append(active, jobs[idx])
			idx++
		}
	}
	evict := func() {
		kept := active[:0]
		for _, j := range active {
			if !j.isFinished() {
				kept = append(kept, j)
			}
		}
		active = kept
	}

	if impl.degree() >= 4 {
		for {
			refill(4)
			if len(active) < 4 {
				break
			}
			runBatch4(active[:4], impl)
			evict()
		}
	}
	if impl.degree() >= 2 {
		for {
			refill(2)
			if len(active) < 2 {
				break
			}
			runBatch2(active[:2], impl)
			evict()
		}
	}
	for _, j := range active {
		runSingle(j, impl)
	}
	for ; idx < len(jobs); idx++ {
		runSingle(jobs[idx], impl)
	}
}

func runBatch4(jobs []*job, impl Implementation) {
	minLen := len(jobs[0].input)
	for _, j := range jobs[1:] {
		if len(j.input) < minLen {
			minLen = len(j.input)
		}
	}
	batchBlocks := minLen / BlockBytes
	if batchBlocks > 0 {
		batchBytes := batchBlocks * BlockBytes
		var countLow, countHigh, lastBlock, lastNode, bufferTail Words4
		var inputs [4][]byte
		for i, j := range jobs {
			countLow[i], countHigh[i] = j.count.lo, j.count.hi
			inputs[i] = j.input[:batchBytes]
			if len(j.input) == batchBytes && j.finalize != finalizeNotYet {
				lastBlock[i] = ^uint64(0)
				if j.finalize == finalizeLastNode {
					lastNode[i] = ^uint64(0)
				}
			}
		}
		impl.compress4Loop(jobs[0].words, jobs[1].words, jobs[2].words, jobs[3].words,
			&inputs, &countLow, &countHigh, &lastBlock, &lastNode, batchBlocks, 1, &bufferTail)
		for i, j := range jobs {
			j.count.add(uint64(batchBytes))
			j.input = j.input[batchBytes:]
			if lastBlock[i] != 0 {
				j.finalized = true
			}
		}
	}
	// Only the job(s) that actually ran out of main-loop blocks this round
	// get scalar-finished here; a job with a full block or more still left
	// stays in the caller's active set so compressMany's refill/evict cycle
	// keeps batching it, instead of force-draining it through the
	// single-lane kernel.
	for _, j := range jobs {
		if j.finalize != finalizeNotYet && !j.finalized && len(j.input) < BlockBytes {
			runSingle(j, impl)
		}
	}
}

func runBatch2(jobs []*job, impl Implementation) {
	minLen := len(jobs[0].input)
	if len(jobs[1].input) < minLen {
		minLen = len(jobs[1].input)
	}
	batchBlocks := minLen / BlockBytes
	if batchBlocks > 0 {
		batchBytes := batchBlocks * BlockBytes
		var countLow, countHigh, lastBlock, lastNode, bufferTail Words2
		inputs := [2][]byte{jobs[0].input[:batchBytes], jobs[1].input[:batchBytes]}
		for i, j := range jobs {
			countLow[i], countHigh[i] = j.count.lo, j.count.hi
			if len(j.input) == batchBytes && j.finalize != finalizeNotYet {
				lastBlock[i] = ^uint64(0)
				if j.finalize == finalizeLastNode {
					lastNode[i] = ^uint64(0)
				}
			}
		}
		impl.compress2Loop(jobs[0].words, jobs[1].words, inputs[0], inputs[1],
			&countLow, &countHigh, &lastBlock, &lastNode, batchBlocks, 1, &bufferTail)
		for i, j := range jobs {
			j.count.add(uint64(batchBytes))
			j.input = j.input[batchBytes:]
			if lastBlock[i] != 0 {
				j.finalized = true
			}
		}
	}
	// See the matching comment in runBatch4: only jobs truly out of
	// main-loop blocks get finished here, so jobs with more full blocks
	// left flow back into compressMany's pool instead of being forced
	// down to scalar width.
	for _, j := range jobs {
		if j.finalize != finalizeNotYet && !j.finalized && len(j.input) < BlockBytes {
			runSingle(j, impl)
		}
	}
}

// runSingle finishes j with the scalar kernel: consuming whatever full
// blocks remain, and if j carries a finalize flag, padding and compressing
// its trailing partial block (or, for empty input, a single zero block).
func runSingle(j *job, impl Implementation) {
	if j.finalize == finalizeNotYet {
		blocks := len(j.input) / BlockBytes
		if blocks > 0 {
			n := blocks * BlockBytes
			impl.compress1Loop(j.words, j.input[:n], j.count.lo, j.count.hi, 0, 0, blocks, 1, 0)
			j.count.add(uint64(n))
			j.input = j.input[n:]
		}
		return
	}

	var lastNodeFlag uint64
	if j.finalize == finalizeLastNode {
		lastNodeFlag = ^uint64(0)
	}
	partial := len(j.input) % BlockBytes
	useLocalBuffer := len(j.input) == 0 || partial != 0
	blocks := len(j.input) / BlockBytes
	if blocks > 0 {
		n := blocks * BlockBytes
		var lb, ln uint64
		if !useLocalBuffer {
			lb, ln = ^uint64(0), lastNodeFlag
		}
		impl.compress1Loop(j.words, j.input[:n], j.count.lo, j.count.hi, lb, ln, blocks, 1, 0)
		j.count.add(uint64(n))
		j.input = j.input[n:]
		if !useLocalBuffer {
			j.finalized = true
			return
		}
	}
	var buf [BlockBytes]byte
	copy(buf[:], j.input)
	bufferTail := BlockBytes - len(j.input)
	impl.compress1Loop(j.words, buf[:], j.count.lo, j.count.hi, ^uint64(0), lastNodeFlag, 1, 1, bufferTail)
	j.count.add(uint64(len(j.input)))
	j.input = nil
	j.finalized = true
}

// StateInput pairs a State with the next chunk of its input, for UpdateMany.
type StateInput struct {
	State *State
	Input []byte
}

// UpdateMany absorbs input into several States at once, using whichever
// batched compression kernel the CPU supports. It's equivalent to calling
// State.Update on each pair individually, but faster when there are four or
// more pairs and AVX2 is available.
func UpdateMany(pairs []StateInput) {
	impl := Detect()
	var jobs []*job
	for i := range pairs {
		state := pairs[i].State
		input := pairs[i].Input
		state.compressBufferIfPossible(&input)
		if len(input) == 0 {
			continue
		}
		// Always leave the final block (full or partial) buffered rather
		// than compressed, so Update's "don't finalize" contract holds for
		// a State that's touched by both UpdateMany and plain Update.
		lastBlockStart := len(input) - 1
		lastBlockStart -= lastBlockStart % BlockBytes
		blocks, tail := input[:lastBlockStart], input[lastBlockStart:]
		copy(state.buf[:], tail)
		state.buflen = uint8(len(tail))
		if len(blocks) == 0 {
			continue
		}
		jobs = append(jobs, &job{words: &state.h, count: state.count, input: blocks, finalize: finalizeNotYet})
		state.count.add(uint64(len(blocks)))
	}
	compressMany(jobs, impl)
}

// HashManyJob is one input to HashMany. Build it with NewHashManyJob, run a
// batch of jobs through HashMany, then call ToHash on each to read its
// digest.
type HashManyJob struct {
	j          job
	hashLength uint8
	wasRun     bool
}

// NewHashManyJob prepares a job that will hash input under params once it's
// passed to HashMany. A keyed Params absorbs its key block immediately.
func NewHashManyJob(params *Params, input []byte) (*HashManyJob, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	words := params.initialWords()
	var count counter128
	fk := finalizeRegular
	if params.LastNode {
		fk = finalizeLastNode
	}
	if len(params.Key) > 0 {
		kb := params.keyBlock()
		if len(input) == 0 {
			input = append([]byte(nil), kb[:]...)
		} else {
			Detect().compress1Loop(&words, kb[:], 0, 0, 0, 0, 1, 1, 0)
			count.add(BlockBytes)
		}
	}
	return &HashManyJob{
		j:          job{words: &words, count: count, input: input, finalize: fk},
		hashLength: uint8(params.HashLength),
	}, nil
}

// ToHash reads the digest from a job that has already been run through
// HashMany. Calling it on a job that hasn't run yet is a usage error.
func (hj *HashManyJob) ToHash() Hash {
	if !hj.wasRun {
		usagePanic("HashManyJob.ToHash called before the job was run through HashMany")
	}
	return newHash(hj.j.words, hj.hashLength)
}

// HashMany runs every job in jobs to completion. Running the same job
// through HashMany twice is a usage error.
func HashMany(jobs []*HashManyJob) {
	impl := Detect()
	internal := make([]*job, len(jobs))
	for i, hj := range jobs {
		if hj.wasRun {
			usagePanic("HashManyJob was already run through HashMany")
		}
		hj.wasRun = true
		internal[i] = &hj.j
	}
	compressMany(internal, impl)
}

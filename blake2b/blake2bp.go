package blake2b

import "golang.org/x/sync/errgroup"

// bpFanout and bpMaxDepth are the tree-mode shape BLAKE2bp is defined
// against: exactly four leaves feeding one root.
const (
	bpFanout   = 4
	bpMaxDepth = 2
)

func bpLeafParams(base *Params, index int) *Params {
	return &Params{
		HashLength:      base.HashLength,
		Key:             base.Key,
		Salt:            base.Salt,
		Personal:        base.Personal,
		Fanout:          bpFanout,
		MaxDepth:        bpMaxDepth,
		MaxLeafLength:   0,
		NodeOffset:      uint64(index),
		NodeDepth:       0,
		InnerHashLength: base.HashLength,
		LastNode:        index == bpFanout-1,
	}
}

func bpRootParams(base *Params) *Params {
	return &Params{
		HashLength:      base.HashLength,
		Key:             base.Key,
		Salt:            base.Salt,
		Personal:        base.Personal,
		Fanout:          bpFanout,
		MaxDepth:        bpMaxDepth,
		NodeOffset:      0,
		NodeDepth:       1,
		InnerHashLength: base.HashLength,
		LastNode:        true,
	}
}

// SumBP hashes input as BLAKE2bp: four independent leaves, each striding
// every fourth block of input starting at its own offset, feeding their
// digests into a single root node. Only HashLength, Key, Salt, and Personal
// are read from params; the tree-shape fields are fixed by the algorithm.
//
// The four leaves are computed concurrently with errgroup, a pool local to
// this call. BLAKE2bp never configures a package- or process-wide worker
// pool, so embedding it doesn't contend with or reconfigure a caller's own
// goroutine limits.
func SumBP(input []byte, params *Params) (Hash, error) {
	if params == nil {
		params = NewParams()
	}
	if err := params.Validate(); err != nil {
		return Hash{}, err
	}

	leaves := make([]Hash, bpFanout)
	var g errgroup.Group
	for i := 0; i < bpFanout; i++ {
		i := i
		g.Go(func() error {
			st, err := bpLeafParams(params, i).NewState()
			if err != nil {
				return err
			}
			for start := i * BlockBytes; start < len(input); start += bpFanout * BlockBytes {
				end := start + BlockBytes
				if end > len(input) {
					end = len(input)
				}
				st.Update(input[start:end])
			}
			leaves[i] = st.Finalize()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Hash{}, err
	}

	root, err := bpRootParams(params).NewState()
	if err != nil {
		return Hash{}, err
	}
	for _, leaf := range leaves {
		root.Update(leaf.Bytes())
	}
	return root.Finalize(), nil
}

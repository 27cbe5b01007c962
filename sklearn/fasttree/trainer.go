package fasttree

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/pkg/log"
)

// Trainer fits a gradient-boosted ensemble of regression trees with squared
// loss. Trees grow leaf-wise: the leaf with the largest gain is split next,
// until NumLeaves is reached or no split qualifies. Training uses no random
// sampling, so identical inputs give identical models.
type Trainer struct {
	params TrainingParams

	data    *binnedData
	y       []float64
	numRows int

	gradients   []float64
	hessians    []float64
	predictions []float64

	initScore float64
	trees     []Tree
}

// histBin accumulates gradient statistics for one bin.
type histBin struct {
	sumGrad float64
	sumHess float64
	count   int
}

// splitInfo describes the best split found for a leaf.
type splitInfo struct {
	feature   int
	bin       int
	threshold float64
	gain      float64
	valid     bool
}

// leafState is a leaf that may still be split.
type leafState struct {
	node    int
	rows    []int
	depth   int
	sumGrad float64
	sumHess float64
	best    splitInfo
}

// NewTrainer creates a trainer. Call TrainingParams.Validate first.
func NewTrainer(params TrainingParams) *Trainer {
	return &Trainer{params: params}
}

// Fit trains on X (n×d) and y (n×1).
func (t *Trainer) Fit(X *mat.Dense, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewTrainingError("Trainer.Fit", "training set is empty")
	}
	if len(y) != rows {
		return errors.NewDimensionError("Trainer.Fit", rows, len(y), 0)
	}
	if err := errors.CheckNumericalStability("Trainer.Fit: targets", y, 0); err != nil {
		return err
	}
	if err := errors.CheckNumericalStability("Trainer.Fit: features", X.RawMatrix().Data, 0); err != nil {
		return err
	}

	logger := log.GetLoggerWithName("fasttree.trainer")

	t.numRows = rows
	t.y = y
	t.data = newBinnedData(X, t.params.MaxBin)
	t.gradients = make([]float64, rows)
	t.hessians = make([]float64, rows)
	t.predictions = make([]float64, rows)
	t.trees = make([]Tree, 0, t.params.NumTrees)

	// squared loss starts from the mean target
	var sum float64
	for _, v := range y {
		sum += v
	}
	t.initScore = sum / float64(rows)
	for i := range t.predictions {
		t.predictions[i] = t.initScore
	}

	for iter := 0; iter < t.params.NumTrees; iter++ {
		t.calculateGradients()

		tree := t.buildTree()
		t.trees = append(t.trees, tree)

		if logger.Enabled(context.Background(), log.LevelDebug) && iter%10 == 0 {
			logger.Debug("Training progress",
				log.IterationKey, iter,
				log.LossKey, t.loss(),
				"leaves", tree.NumLeaves())
		}
	}

	return nil
}

// calculateGradients computes first and second derivatives of the squared
// loss 0.5*(pred-y)^2 at the current predictions.
func (t *Trainer) calculateGradients() {
	for i := 0; i < t.numRows; i++ {
		t.gradients[i] = t.predictions[i] - t.y[i]
		t.hessians[i] = 1
	}
}

// buildTree grows one tree and adds its output to the running predictions.
func (t *Trainer) buildTree() Tree {
	tree := Tree{Nodes: make([]Node, 0, 2*t.params.NumLeaves-1)}

	all := make([]int, t.numRows)
	for i := range all {
		all[i] = i
	}
	root := t.newLeaf(&tree, all, 0)
	leaves := []*leafState{root}

	for len(leaves) < t.params.NumLeaves {
		bestIdx := -1
		for i, l := range leaves {
			if !l.best.valid {
				continue
			}
			if bestIdx < 0 || l.best.gain > leaves[bestIdx].best.gain {
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}

		parent := leaves[bestIdx]
		left, right := t.split(&tree, parent)
		leaves[bestIdx] = left
		leaves = append(leaves, right)
	}

	for _, l := range leaves {
		value := -l.sumGrad / (l.sumHess + t.params.Lambda) * t.params.LearningRate
		node := &tree.Nodes[l.node]
		node.LeafValue = value
		for _, r := range l.rows {
			t.predictions[r] += value
		}
	}
	return tree
}

// newLeaf appends a leaf node for rows and searches its best split.
func (t *Trainer) newLeaf(tree *Tree, rows []int, depth int) *leafState {
	l := &leafState{node: len(tree.Nodes), rows: rows, depth: depth}
	for _, r := range rows {
		l.sumGrad += t.gradients[r]
		l.sumHess += t.hessians[r]
	}
	tree.Nodes = append(tree.Nodes, Node{
		NodeType:   LeafNode,
		LeftChild:  -1,
		RightChild: -1,
		Count:      len(rows),
	})

	if t.params.MaxDepth == 0 || depth < t.params.MaxDepth {
		l.best = t.findBestSplit(l)
	}
	return l
}

// split turns parent into an internal node with two new leaves.
func (t *Trainer) split(tree *Tree, parent *leafState) (*leafState, *leafState) {
	s := parent.best
	bins := t.data.bins[s.feature]

	leftRows := make([]int, 0, len(parent.rows))
	rightRows := make([]int, 0, len(parent.rows))
	for _, r := range parent.rows {
		if int(bins[r]) <= s.bin {
			leftRows = append(leftRows, r)
		} else {
			rightRows = append(rightRows, r)
		}
	}

	left := t.newLeaf(tree, leftRows, parent.depth+1)
	right := t.newLeaf(tree, rightRows, parent.depth+1)

	node := &tree.Nodes[parent.node]
	node.NodeType = NumericalNode
	node.SplitFeature = s.feature
	node.Threshold = s.threshold
	node.Gain = s.gain
	node.LeftChild = left.node
	node.RightChild = right.node

	return left, right
}

// findBestSplit scans the histogram of every feature for the split with the
// largest gain. Ties keep the first candidate found.
func (t *Trainer) findBestSplit(l *leafState) splitInfo {
	best := splitInfo{gain: math.Inf(-1)}
	if len(l.rows) < 2*t.params.MinDataInLeaf {
		return best
	}

	parentScore := t.leafScore(l.sumGrad, l.sumHess)
	for j, mapper := range t.data.mappers {
		nb := mapper.numBins()
		if nb < 2 {
			continue
		}
		hist := make([]histBin, nb)
		bins := t.data.bins[j]
		for _, r := range l.rows {
			h := &hist[bins[r]]
			h.sumGrad += t.gradients[r]
			h.sumHess += t.hessians[r]
			h.count++
		}

		var leftGrad, leftHess float64
		leftCount := 0
		for b := 0; b < nb-1; b++ {
			if hist[b].count == 0 {
				continue
			}
			leftGrad += hist[b].sumGrad
			leftHess += hist[b].sumHess
			leftCount += hist[b].count

			rightCount := len(l.rows) - leftCount
			if leftCount < t.params.MinDataInLeaf {
				continue
			}
			if rightCount < t.params.MinDataInLeaf {
				break
			}

			gain := 0.5 * (t.leafScore(leftGrad, leftHess) +
				t.leafScore(l.sumGrad-leftGrad, l.sumHess-leftHess) - parentScore)
			if gain > best.gain {
				best = splitInfo{
					feature:   j,
					bin:       b,
					threshold: mapper.threshold(b),
					gain:      gain,
				}
			}
		}
	}

	best.valid = !math.IsInf(best.gain, -1) && best.gain > t.params.MinGainToSplit
	return best
}

func (t *Trainer) leafScore(sumGrad, sumHess float64) float64 {
	return sumGrad * sumGrad / (sumHess + t.params.Lambda)
}

// loss returns the mean squared error of the current predictions.
func (t *Trainer) loss() float64 {
	var sum float64
	for i, p := range t.predictions {
		d := p - t.y[i]
		sum += d * d
	}
	return sum / float64(t.numRows)
}

// GetModel returns the trained ensemble.
func (t *Trainer) GetModel() *Model {
	cols := 0
	if t.data != nil {
		cols = len(t.data.mappers)
	}
	return &Model{
		InitScore:   t.initScore,
		Trees:       t.trees,
		NumFeatures: cols,
		Params:      t.params,
	}
}

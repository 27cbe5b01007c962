package fasttree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// NodeType represents the type of a tree node
type NodeType int

const (
	// LeafNode is a terminal node with a value
	LeafNode NodeType = iota
	// NumericalNode splits on feature <= threshold
	NumericalNode
)

// Node is a single node of a regression tree.
type Node struct {
	NodeType   NodeType
	LeftChild  int // -1 for leaves
	RightChild int // -1 for leaves

	// Split information
	SplitFeature int
	Threshold    float64
	Gain         float64

	// LeafValue already includes the learning rate.
	LeafValue float64
	// Count is the number of training rows that reached this node.
	Count int
}

// IsLeaf returns true if the node is a leaf node
func (n *Node) IsLeaf() bool {
	return n.NodeType == LeafNode
}

// Tree is one member of the ensemble. Nodes[0] is the root.
type Tree struct {
	Nodes []Node
}

// Predict returns the tree output for one row.
func (t *Tree) Predict(features []float64) float64 {
	nodeID := 0
	for {
		node := &t.Nodes[nodeID]
		if node.IsLeaf() {
			return node.LeafValue
		}
		if features[node.SplitFeature] <= node.Threshold {
			nodeID = node.LeftChild
		} else {
			nodeID = node.RightChild
		}
	}
}

// NumLeaves returns the number of leaves.
func (t *Tree) NumLeaves() int {
	n := 0
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			n++
		}
	}
	return n
}

// Model is a trained ensemble: InitScore plus the sum of tree outputs.
type Model struct {
	InitScore    float64
	Trees        []Tree
	NumFeatures  int
	FeatureNames []string
	Params       TrainingParams
}

// PredictRow predicts a single row.
func (m *Model) PredictRow(features []float64) (float64, error) {
	if len(features) != m.NumFeatures {
		return 0, errors.NewDimensionError("Model.PredictRow", m.NumFeatures, len(features), 1)
	}
	return m.predictRow(features), nil
}

func (m *Model) predictRow(features []float64) float64 {
	pred := m.InitScore
	for i := range m.Trees {
		pred += m.Trees[i].Predict(features)
	}
	return pred
}

// Predict returns an n×1 matrix of predictions.
func (m *Model) Predict(X mat.Matrix) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if cols != m.NumFeatures {
		return nil, errors.NewDimensionError("Model.Predict", m.NumFeatures, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	features := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(features, i, X)
		predictions.Set(i, 0, m.predictRow(features))
	}
	return predictions, nil
}

// FeatureImportance returns per-feature importance. importanceType is
// "split" (times a feature is used) or "gain" (total split gain).
func (m *Model) FeatureImportance(importanceType string) ([]float64, error) {
	if importanceType != "split" && importanceType != "gain" {
		return nil, errors.NewValidationError("importance_type", "must be split or gain", importanceType)
	}

	importance := make([]float64, m.NumFeatures)
	for _, tree := range m.Trees {
		for _, node := range tree.Nodes {
			if node.IsLeaf() {
				continue
			}
			if importanceType == "split" {
				importance[node.SplitFeature]++
			} else {
				importance[node.SplitFeature] += node.Gain
			}
		}
	}
	return importance, nil
}

package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"nagrik-nivedan/imaging"
	"nagrik-nivedan/models"
)

// ErrClassification marks per-request inference failures. These are
// internal errors; startup problems with the artifact are returned from
// Load and are expected to be fatal.
var ErrClassification = errors.New("classification failed")

// Artifact is the serialized classifier produced by the offline
// training procedure: a linear layer over the flattened, normalized
// RGB input plus the ordered label vocabulary.
type Artifact struct {
	InputSize int         `json:"input_size"`
	Labels    []string    `json:"labels"`
	Weights   [][]float64 `json:"weights"`
	Bias      []float64   `json:"bias"`
}

// Model is the process-wide classifier. It is loaded once at startup
// and is read-only afterwards; inference runs behind a single
// acquisition point so concurrent callers never interleave.
type Model struct {
	mu        sync.Mutex
	inputSize int
	labels    []string
	weights   [][]float64
	bias      []float64
}

// Load reads and validates an artifact file. Any problem here must
// prevent the process from serving traffic.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier artifact %s: %w", path, err)
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("malformed classifier artifact %s: %w", path, err)
	}
	return New(artifact)
}

// New validates an in-memory artifact and builds the model.
func New(artifact Artifact) (*Model, error) {
	if artifact.InputSize <= 0 {
		return nil, fmt.Errorf("classifier artifact: input_size must be positive, got %d", artifact.InputSize)
	}
	if len(artifact.Labels) == 0 {
		return nil, errors.New("classifier artifact: empty label set")
	}
	if len(artifact.Weights) != len(artifact.Labels) {
		return nil, fmt.Errorf("classifier artifact: %d weight rows for %d labels",
			len(artifact.Weights), len(artifact.Labels))
	}
	if len(artifact.Bias) != len(artifact.Labels) {
		return nil, fmt.Errorf("classifier artifact: %d bias values for %d labels",
			len(artifact.Bias), len(artifact.Labels))
	}
	features := artifact.InputSize * artifact.InputSize * 3
	for i, row := range artifact.Weights {
		if len(row) != features {
			return nil, fmt.Errorf("classifier artifact: weight row %d has %d values, want %d",
				i, len(row), features)
		}
	}
	return &Model{
		inputSize: artifact.InputSize,
		labels:    artifact.Labels,
		weights:   artifact.Weights,
		bias:      artifact.Bias,
	}, nil
}

// Labels returns the ordered label vocabulary.
func (m *Model) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Classify resizes and normalizes the pixel buffer to the model input
// and returns the top label with its softmax probability.
func (m *Model) Classify(buf *imaging.PixelBuffer) (models.Classification, error) {
	if buf == nil || buf.Width <= 0 || buf.Height <= 0 || len(buf.Pix) != buf.Width*buf.Height*3 {
		return models.Classification{}, fmt.Errorf("%w: malformed pixel buffer", ErrClassification)
	}

	input := preprocess(buf, m.inputSize)

	m.mu.Lock()
	defer m.mu.Unlock()

	logits := make([]float64, len(m.labels))
	for i, row := range m.weights {
		sum := m.bias[i]
		for j, w := range row {
			sum += w * input[j]
		}
		logits[i] = sum
	}

	probs := softmax(logits)
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return models.Classification{
		IssueType:  m.labels[best],
		Confidence: probs[best],
	}, nil
}

func softmax(logits []float64) []float64 {
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}
	sum := 0.0
	out := make([]float64, len(logits))
	for i, v := range logits {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

package docstate

import (
	"sort"

	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/rng"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region document
// Document is a minimal in-memory DocumentState: a fixed set of sentences,
// each with its current segmentation and PhrasePairCollection, plus an
// opaque feature snapshot and a shared RNG. It is the reference
// implementation consumed by cmd/propose; production hosts may supply their
// own DocumentState instead.
type Document struct {
	segs    []phrase.PhraseSegmentation
	colls   []PhrasePairCollection
	feature interface{}
	source  *rng.Source

	lengthCumWeights []float64
}

// NewDocument builds a Document from per-sentence initial segmentations and
// collections. Sentences are drawn by DrawSentence with probability
// proportional to source sentence length.
func NewDocument(segs []phrase.PhraseSegmentation, colls []PhrasePairCollection, feature interface{}, source *rng.Source) *Document {
	cum := make([]float64, len(colls))
	total := 0.0
	for i, c := range colls {
		total += float64(c.SentenceLength())
		cum[i] = total
	}
	return &Document{segs: segs, colls: colls, feature: feature, source: source, lengthCumWeights: cum}
}

func (d *Document) SentenceCount() int { return len(d.segs) }

func (d *Document) Segmentation(i int) phrase.PhraseSegmentation { return d.segs[i] }

func (d *Document) Collection(i int) PhrasePairCollection { return d.colls[i] }

func (d *Document) FeatureState() interface{} { return d.feature }

func (d *Document) RNG() *rng.Source { return d.source }

func (d *Document) DrawSentence() int {
	return d.source.SelectCumulative(d.lengthCumWeights)
}

// Apply mutates the document in place according to step's modifications,
// replacing each half-open range [Start, End) of the named sentence's
// segmentation with New. All ranges are indices into the segmentation as
// it stood before step was drawn (MovePhrases, for one, emits an insert and
// a delete both indexed that way), so modifications touching the same
// sentence are applied in descending Start order: applying the highest
// range first never disturbs the indices a lower range still needs.
func (d *Document) Apply(step *searchstep.Step) {
	bySentence := map[int][]searchstep.Modification{}
	for _, m := range step.Modifications {
		bySentence[m.SentenceIndex] = append(bySentence[m.SentenceIndex], m)
	}
	for sentno, mods := range bySentence {
		sort.SliceStable(mods, func(i, j int) bool { return mods[i].Start > mods[j].Start })
		cur := d.segs[sentno]
		for _, m := range mods {
			out := make(phrase.PhraseSegmentation, 0, len(cur)-(m.End-m.Start)+len(m.New))
			out = append(out, cur[:m.Start]...)
			out = append(out, m.New...)
			out = append(out, cur[m.End:]...)
			cur = out
		}
		d.segs[sentno] = cur
	}
}
// #endregion document

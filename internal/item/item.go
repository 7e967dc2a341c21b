package item

import "time"

// Point is a 2-D coordinate on the sorting canvas.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// AnswerRecord is one presentation of an item that the learner responded to.
type AnswerRecord struct {
	Response string
	Latency  time.Duration
	At       time.Time
}

// Item is a single study card. Index is unique within a session and is the
// key used to align items with clustering output.
type Item struct {
	Index    int
	ID       string
	Prompt   string
	Answer   string
	Position Point

	log []AnswerRecord
}

// New creates an item with an empty answer log.
func New(index int, id, prompt, answer string, pos Point) *Item {
	return &Item{
		Index:    index,
		ID:       id,
		Prompt:   prompt,
		Answer:   answer,
		Position: pos,
	}
}

// TimesSeen returns the number of answers recorded for the item.
func (it *Item) TimesSeen() int {
	return len(it.log)
}

// RecordAnswer appends an entry to the answer log.
func (it *Item) RecordAnswer(rec AnswerRecord) {
	it.log = append(it.log, rec)
}

// AnswerLog returns a copy of the answer log.
func (it *Item) AnswerLog() []AnswerRecord {
	out := make([]AnswerRecord, len(it.log))
	copy(out, it.log)
	return out
}

// Positions extracts the positions of items, index-aligned with the input.
func Positions(items []*Item) []Point {
	pts := make([]Point, len(items))
	for i, it := range items {
		pts[i] = it.Position
	}
	return pts
}

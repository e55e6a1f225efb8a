package domain

// DefaultCatalogID names the built-in catalog.
const DefaultCatalogID = "musical-eras"

// DefaultCatalog returns the content the page ships with. A fresh value is
// built on every call so callers may mutate it.
func DefaultCatalog() Catalog {
	return Catalog{
		ID: DefaultCatalogID,
		Questions: []Question{
			{ID: "q1", Title: "Q1. Which era relied on basso continuo?", CorrectAnswer: "Baroque", Explanation: "Baroque music widely used basso continuo (bass + chordal instrument)."},
			{ID: "q2", Title: "Q2. Which era spans roughly 1750-1820?", CorrectAnswer: "Classical", Explanation: "The Classical era is roughly 1750-1820 (Haydn, Mozart, early Beethoven)."},
			{ID: "q3", Title: "Q3. Which form contrasts a soloist with the ensemble?", CorrectAnswer: "Concerto", Explanation: "Baroque concerto contrasts soloist vs. ensemble; Vivaldi is a key figure."},
			{ID: "q4", Title: "Q4. Which keyboard dominated the Classical era?", CorrectAnswer: "Piano", Explanation: "In the Classical era the piano replaced the harpsichord as the dominant keyboard."},
			{ID: "q5", Title: "Q5. What is a Romantic art song for voice and piano called?", CorrectAnswer: "Lied", Explanation: "A Romantic Lied sets poetry for solo voice and piano (Schubert, Schumann)."},
			{ID: "q6", Title: "Q6. Who pioneered the twelve-tone method?", CorrectAnswer: "Arnold Schoenberg", Explanation: "Schoenberg pioneered atonality and the twelve-tone method (20th century)."},
			{ID: "q7", Title: "Q7. Which style is built on repetition and gradual change?", CorrectAnswer: "Minimalism", Explanation: "Minimalism uses repetitive patterns and gradual change (Reich, Glass)."},
			{ID: "q8", Title: "Q8. Which era runs from about 1900 to the present?", CorrectAnswer: "Modern", Explanation: "From ~1900 to present: diverse experimentation and new technologies."},
		},
		Instruments: []Instrument{
			{ID: "guitar", Label: "Guitar", SpriteClass: "guitar", AudioRef: "audio/guitar.mp3"},
			{ID: "timpani", Label: "Timpani", SpriteClass: "timpani", AudioRef: "audio/timpani.mp3"},
			{ID: "trumpet", Label: "Trumpet", SpriteClass: "trumpet", AudioRef: "audio/trumpet.mp3"},
			{ID: "harpsichord", Label: "Harpsichord", SpriteClass: "harpsichord", AudioRef: "audio/harpsichord.mp3"},
			{ID: "oboe", Label: "Oboe", SpriteClass: "oboe", AudioRef: "audio/oboe.mp3"},
			{ID: "violin", Label: "Violin", SpriteClass: "violin", AudioRef: "audio/violin.mp3"},
		},
		EraTracks: map[string]string{
			"baroque":   "audio/baroque.mp3",
			"classical": "audio/classical.mp3",
			"romantic":  "audio/romantic.mp3",
			"modern":    "audio/modern.mp3",
		},
	}
}

package topic

import (
	"math/rand"
)

// randomTopics is the built-in brainrot topic catalog
var randomTopics = []string{
	"The Navier-Stokes Equation of Rizz",
	"Topological Proof that Ohio is a Myth",
	"Sigma Male Grindset as a Markov Chain",
	"The Skibidi Toilet Hydrodynamics Problem",
	"Why Mewing Maximizes Jawline Eigenvalues",
	"Aura Points and the Riemann Hypothesis",
	"The Fanum Tax: A Game Theory Analysis",
	"Gyatt Distribution in Non-Euclidean Space",
	"Proving P = NP Using Brainrot",
	"The Thermodynamics of the Grimace Shake",
	"Looksmaxxing as Gradient Descent",
	"The Drake Equation but for Rizz",
	"Why Gen Alpha Speaks in Fourier Transforms",
	"Quantum Entanglement of Skibidi and Sigma",
	"The Fractal Geometry of TikTok Algorithms",
}

// Pick returns a caller-supplied topic unchanged. Empty strings are
// accepted; the selector has no opinion on topic content.
func Pick(explicit string) string {
	return explicit
}

// Random returns a uniformly chosen topic from the built-in catalog
func Random() string {
	return randomTopics[rand.Intn(len(randomTopics))]
}

// Catalog returns a copy of the built-in topic list
func Catalog() []string {
	out := make([]string, len(randomTopics))
	copy(out, randomTopics)
	return out
}

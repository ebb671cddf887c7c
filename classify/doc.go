// Package classify implements the prompt classification engine.
//
// A Classifier is built from Settings (ordered keyword categories with
// weights, a threshold and a boost factor) and an ai.Embedder. Construction
// embeds every keyword once. Each Classify call then:
//
//  1. rejects prompts that fail the Gate with core.ErrInvalidPrompt
//  2. embeds the prompt once
//  3. scores each category in parallel on an ants worker pool (ScoreCategory)
//  4. turns each ranked list into posteriors and a combined probability
//     (CombinePosteriors)
//
// # Scoring
//
// Cosine similarities are rescaled from [-1, 1] to [0, 1] with (s+1)/2 and
// ranked. Keywords found verbatim in the prompt get BoostFactor added, and
// the category weight multiplies the result. Boosting does not reorder the
// ranking. Posteriors are score/N for N categories and the combined
// probability is 1 - Π(1 - posterior).
//
// Scores are heuristics, not calibrated probabilities. Boosted scores can
// exceed 1 and so can combined probabilities unless Settings.Clamp is set.
//
// # Monitoring
//
// Pass a Monitor to ClassifyWithMonitor, or install a default with
// WithMonitor, to observe each stage.
package classify

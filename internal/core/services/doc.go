// Package services implements the driving ports: the content analysis
// pipeline (extractor, classifier, analyzer), the semantic tagger, the
// knowledge graph, multi-strategy search and the task generator.
//
// Services depend on domain types and driven ports only. Heuristic
// vocabularies (stop words, sentiment lexicons, the tag hierarchy, task
// pattern tables) live alongside the service that owns them.
package services

// Package domain contains the core model for digitprobe: samples, predictions,
// run reports and the error taxonomy.
//
// The domain is transport- and persistence-agnostic: it does not depend on IDX
// parsing, net/http, image encoding or the filesystem. Infra/adapters map into/from
// these types.
package domain

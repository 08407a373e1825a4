// Package supplier implements the supplier feed source: it downloads the
// supplier's stock archive over HTTP, extracts the CSV stock sheet, and
// maps the feed's quirks into transport-neutral raw records for the
// normalizer.
//
// The feed encodes availability with sentinel values: ">10" means ample
// stock (reported as 100) and "1" means effectively none (reported as 0).
// Prices arrive as display strings like "5'990.00 руб." and are reduced to
// their integer digits. Both mappings are feed-specific and therefore live
// here rather than in the core normalizer.
//
// An optional Archiver uploads each run's raw archive to object storage so
// a disputed sync can be replayed against the exact feed it saw.
package supplier

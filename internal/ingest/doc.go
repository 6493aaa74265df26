// Package ingest loads climate CSV snapshots into the country dimension and
// the seven fact tables.
//
// A file is processed in three steps:
//
//  1. [Read] parses the 26-column, header-less CSV
//  2. the [Resolver] assigns country ids in first-seen order, continuing
//     after the countries already stored
//  3. one [FactLoader] per [Domain] converts its columns; the new countries
//     are written first, then each domain is copied in its own transaction
//
// Every row of a file is validated before anything is written, so a
// malformed file leaves the database untouched. Files of one run are loaded
// in order and the run stops at the first failing file; earlier files stay
// committed.
//
// Country ids are assigned in process. Running two ingests against the
// same database at the same time is NOT safe: both may hand out the same
// id to different countries.
package ingest

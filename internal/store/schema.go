package store

// SchemaSQL is the authoritative schema for the claim store. Every statement
// is idempotent (IF NOT EXISTS) so InitSchema is safe to run on each process
// start. Tests build their in-memory databases from this constant as well, so
// repository code and schema cannot drift apart.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS claims (
	id TEXT PRIMARY KEY,
	script_id TEXT NOT NULL,
	claim_text TEXT NOT NULL,
	claim_type TEXT NOT NULL CHECK(claim_type IN ('fact', 'statistic', 'quote', 'prediction', 'legal')),
	extracted_at DATETIME NOT NULL,
	nlp_confidence REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('pending', 'auto-approved', 'human-review', 'approved', 'rejected', 'corrected')) DEFAULT 'pending',
	verdict_at DATETIME,
	sentence_idx INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(status);
CREATE INDEX IF NOT EXISTS idx_claims_script ON claims(script_id);

CREATE TABLE IF NOT EXISTS evidence (
	id TEXT PRIMARY KEY,
	claim_id TEXT NOT NULL,
	source_url TEXT NOT NULL,
	source_type TEXT NOT NULL CHECK(source_type IN ('government', 'news', 'academic', 'fact-check', 'official_document', 'peer_reviewed')),
	fetch_timestamp DATETIME NOT NULL,
	snapshot_path TEXT,
	evidence_score REAL NOT NULL DEFAULT 0,
	FOREIGN KEY (claim_id) REFERENCES claims(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_evidence_claim ON evidence(claim_id);

CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	claim_id TEXT NOT NULL,
	reviewer_id TEXT,
	action TEXT NOT NULL CHECK(action IN ('approve', 'edit', 'reject')),
	action_notes TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (claim_id) REFERENCES claims(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_reviews_claim ON reviews(claim_id);

CREATE TABLE IF NOT EXISTS corrections (
	id TEXT PRIMARY KEY,
	video_id TEXT NOT NULL,
	original_claim_id TEXT NOT NULL,
	correction_text TEXT NOT NULL,
	correction_posted_at DATETIME NOT NULL,
	FOREIGN KEY (original_claim_id) REFERENCES claims(id)
);
`

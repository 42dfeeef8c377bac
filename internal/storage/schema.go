package storage

const schema = `
-- The 'decisions' table stores every reviewed name candidate.
-- A pair holds exactly one outcome, so accepted and refused stay disjoint.
CREATE TABLE IF NOT EXISTS decisions (
    first TEXT NOT NULL,
    second TEXT NOT NULL,
    outcome INTEGER NOT NULL CHECK (outcome IN (1, 2)), -- 1: Accept, 2: Refuse
    decided_at DATETIME NOT NULL,

    PRIMARY KEY (first, second)
);

CREATE INDEX IF NOT EXISTS decisions_outcome ON decisions(outcome);
`

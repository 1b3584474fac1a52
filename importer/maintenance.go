package importer

// Vacuum reclaims free space in the store. Must run outside any transaction.
func (imp *Importer) Vacuum() error {
	return imp.db.Exec("VACUUM").Error
}

// Analyze refreshes the query-planner statistics for the reporting layer's
// read queries.
func (imp *Importer) Analyze() error {
	return imp.db.Exec("ANALYZE").Error
}

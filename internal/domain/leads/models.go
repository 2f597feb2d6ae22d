package leads

// Models lists every table owned by this package, in migration order.
func Models() []any {
	return []any{
		&MCANewLead{},
		&IECLead{},
		&GSTBasic{},
		&GSTBusinessNature{},
		&IngestRun{},
	}
}

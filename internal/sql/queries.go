package sql

import "embed"

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS

//go:embed queries/lookup_insurance_plan.sql
var LookupInsurancePlan string

//go:embed queries/insert_bill.sql
var InsertBill string

//go:embed queries/seed_patients.sql
var SeedPatients string

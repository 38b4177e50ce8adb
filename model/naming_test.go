package model

import (
	"testing"
)

func TestToDBName(t *testing.T) {
	var maps = map[string]string{
		"":                          "",
		"x":                         "x",
		"X":                         "x",
		"userRestrictions":          "user_restrictions",
		"ThisIsATest":               "this_is_a_test",
		"PFAndESI":                  "pf_and_esi",
		"AbcAndJkl":                 "abc_and_jkl",
		"EmployeeID":                "employee_id",
		"SKU_ID":                    "sku_id",
		"FieldX":                    "field_x",
		"HTTPAndSMTP":               "http_and_smtp",
		"HTTPServerHandlerForURLID": "http_server_handler_for_url_id",
		"UUID":                      "uuid",
		"HTTPURL":                   "http_url",
		"HTTP_URL":                  "http_url",
		"ParentModel":               "parent_model",
		"SHA256Hash":                "sha256_hash",
	}

	for key, value := range maps {
		if toDBName(key) != value {
			t.Errorf("%v toName should equal %v, but got %v", key, value, toDBName(key))
		}
	}
}

func TestNamingStrategy(t *testing.T) {
	ns := NamingStrategy{TablePrefix: "public."}

	if table := ns.TableName("ParentModel"); table != "public.parent_models" {
		t.Errorf("invalid table name generated, got %v", table)
	}

	if column := ns.ColumnName("ParentModelID"); column != "parent_model_id" {
		t.Errorf("invalid column name generated, got %v", column)
	}

	if fk := ns.ForeignKey("ParentModel", "id"); fk != "parent_model_id" {
		t.Errorf("invalid foreign key generated, got %v", fk)
	}

	if joinTable := ns.JoinTableName("Users", "Role"); joinTable != "public.role_user" {
		t.Errorf("invalid join table generated, got %v", joinTable)
	}

	if id, typ := ns.MorphColumns("Commentable"); id != "commentable_id" || typ != "commentable_type" {
		t.Errorf("invalid morph columns generated, got %v, %v", id, typ)
	}

	singular := NamingStrategy{SingularTable: true}
	if table := singular.TableName("ChildModel"); table != "child_model" {
		t.Errorf("invalid singular table name generated, got %v", table)
	}
}

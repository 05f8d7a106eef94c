package specifications

// defaultTable mirrors the address layouts shipped with the checkout SDK.
func defaultTable() map[string]Specification {
	return map[string]Specification{
		"AU": {
			HasDataset: true,
			Labels: map[string]string{
				FieldHouseNumberOrName: "apartmentSuite",
				FieldStateOrProvince:   "state",
				FieldStreet:            "address",
			},
			Placeholders: map[string]string{
				FieldStateOrProvince: "select.state",
			},
			OptionalFields: []string{FieldHouseNumberOrName},
			Schema: Schema{
				Single(FieldCountry),
				Single(FieldStreet),
				Single(FieldHouseNumberOrName),
				Row(Col(FieldCity, 70), Col(FieldStateOrProvince, 30), Col(FieldPostalCode, 30)),
			},
		},
		"BR": {
			HasDataset: true,
			Labels: map[string]string{
				FieldStateOrProvince: "state",
			},
			Placeholders: map[string]string{
				FieldStateOrProvince: "select.state",
			},
		},
		"CA": {
			HasDataset: true,
			Labels: map[string]string{
				FieldHouseNumberOrName: "apartmentSuite",
				FieldStateOrProvince:   "provinceOrTerritory",
				FieldStreet:            "address",
			},
			Placeholders: map[string]string{
				FieldStateOrProvince: "select.provinceOrTerritory",
			},
			OptionalFields: []string{FieldHouseNumberOrName},
			Schema: Schema{
				Single(FieldCountry),
				Single(FieldStreet),
				Single(FieldHouseNumberOrName),
				Row(Col(FieldCity, 70), Col(FieldPostalCode, 30)),
				Single(FieldStateOrProvince),
			},
		},
		"GB": {
			Labels: map[string]string{
				FieldCity:              "cityTown",
				FieldHouseNumberOrName: "houseNumberOrName",
				FieldStreet:            "street",
			},
			Schema: Schema{
				Single(FieldCountry),
				Row(Col(FieldHouseNumberOrName, 30), Col(FieldStreet, 70)),
				Row(Col(FieldCity, 70), Col(FieldPostalCode, 30)),
				Single(FieldStateOrProvince),
			},
		},
		"US": {
			HasDataset: true,
			Labels: map[string]string{
				FieldPostalCode:        "zipCode",
				FieldHouseNumberOrName: "apartmentSuite",
				FieldStateOrProvince:   "state",
				FieldStreet:            "address",
			},
			Placeholders: map[string]string{
				FieldStateOrProvince: "select.state",
			},
			OptionalFields: []string{FieldHouseNumberOrName},
			Schema: Schema{
				Single(FieldCountry),
				Single(FieldStreet),
				Single(FieldHouseNumberOrName),
				Single(FieldCity),
				Row(Col(FieldStateOrProvince, 50), Col(FieldPostalCode, 50)),
			},
		},
		DefaultKey: {
			Placeholders: map[string]string{
				FieldStateOrProvince: "select.provinceOrTerritory",
			},
			Schema: Schema{
				Single(FieldCountry),
				Row(Col(FieldStreet, 70), Col(FieldHouseNumberOrName, 30)),
				Row(Col(FieldPostalCode, 30), Col(FieldCity, 70)),
				Single(FieldStateOrProvince),
			},
		},
	}
}

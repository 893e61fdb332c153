package regions

// defaultRows is the shipped subregion table. Country names follow the
// harmonized basemap naming (see basemap.Harmonize).
var defaultRows = []Subregion{
	{Code: "Canada", Main: "CAZ", Countries: []string{"Canada"}},
	{Code: "USA", Main: "USA", Countries: []string{"United States of America"}},
	{Code: "Mexico", Main: "LAM", Countries: []string{"Mexico"}},
	{Code: "Rest C.Am.", Main: "LAM", Countries: []string{
		"Belize", "Guatemala", "Honduras", "El Salvador", "Nicaragua", "Costa Rica", "Panama",
		"Cuba", "Jamaica", "Haiti", "Dominican Republic", "The Bahamas", "Trinidad and Tobago",
		"Barbados", "Grenada", "Saint Lucia", "Saint Vincent and the Grenadines",
		"Antigua and Barbuda", "Dominica", "Saint Kitts and Nevis",
	}},
	{Code: "Brazil", Main: "LAM", Countries: []string{"Brazil"}},
	{Code: "Rest S.Am.", Main: "LAM", Countries: []string{
		"Argentina", "Chile", "Uruguay", "Paraguay", "Bolivia", "Peru", "Ecuador", "Colombia",
		"Venezuela", "Guyana", "Suriname",
	}},
	{Code: "N.Africa", Main: "MEA", Countries: []string{
		"Morocco", "Algeria", "Tunisia", "Libya", "Egypt", "Western Sahara",
	}},
	{Code: "W.Africa", Main: "SSA", Countries: []string{
		"Benin", "Burkina Faso", "Cabo Verde", "Cote d'Ivoire", "Gambia", "Ghana", "Guinea",
		"Guinea-Bissau", "Liberia", "Mali", "Mauritania", "Niger", "Nigeria", "Senegal",
		"Sierra Leone", "Togo",
	}},
	{Code: "E.Africa", Main: "SSA", Countries: []string{
		"Burundi", "Comoros", "Djibouti", "Eritrea", "Ethiopia", "Kenya", "Madagascar", "Malawi",
		"Mauritius", "Mozambique", "Rwanda", "Seychelles", "Somalia", "South Sudan", "Sudan",
		"Tanzania", "Uganda",
	}},
	{Code: "S.Africa", Main: "SSA", Countries: []string{"South Africa"}},
	{Code: "Rest S Africa", Main: "SSA", Countries: []string{
		"Angola", "Botswana", "Eswatini", "Lesotho", "Namibia", "Zambia", "Zimbabwe",
	}},
	{Code: "W.Europe", Main: "EUR", Countries: []string{
		"France", "Germany", "Netherlands", "Belgium", "Luxembourg", "Austria", "Switzerland",
		"Italy", "Spain", "Portugal", "Greece", "Malta", "Andorra", "San Marino", "Monaco", "Liechtenstein",
	}},
	{Code: "C.Europe", Main: "EUR", Countries: []string{
		"Poland", "Czechia", "Slovakia", "Hungary", "Slovenia", "Croatia", "Romania", "Bulgaria",
		"Bosnia and Herzegovina", "Serbia", "Montenegro", "North Macedonia", "Albania", "Kosovo",
	}},
	{Code: "Turkey", Main: "NEU", Countries: []string{"Turkey"}},
	{Code: "Ukraine", Main: "NEU", Countries: []string{"Ukraine"}},
	{Code: "Russia", Main: "REF", Countries: []string{"Russia"}},
	{Code: "Stan", Main: "REF", Countries: []string{
		"Kazakhstan", "Kyrgyzstan", "Tajikistan", "Turkmenistan", "Uzbekistan",
	}},
	{Code: "M.East", Main: "MEA", Countries: []string{
		"Saudi Arabia", "United Arab Emirates", "Qatar", "Bahrain", "Kuwait", "Oman", "Yemen",
		"Iraq", "Iran", "Jordan", "Lebanon", "Israel", "Syria",
	}},
	{Code: "India", Main: "IND", Countries: []string{"India"}},
	{Code: "Korea", Main: "OAS", Countries: []string{
		"Korea, Republic of", "Korea, Democratic People's Republic of",
	}},
	{Code: "China", Main: "CHA", Countries: []string{"China"}},
	{Code: "SE.Asia", Main: "OAS", Countries: []string{
		"Thailand", "Viet Nam", "Cambodia", "Lao PDR", "Myanmar", "Malaysia", "Singapore",
		"Philippines", "Brunei", "Timor-Leste",
	}},
	{Code: "Indonesia", Main: "OAS", Countries: []string{"Indonesia"}},
	{Code: "Japan", Main: "JPN", Countries: []string{"Japan"}},
	{Code: "Rest S Asia", Main: "OAS", Countries: []string{
		"Pakistan", "Bangladesh", "Sri Lanka", "Nepal", "Bhutan", "Afghanistan", "Maldives",
	}},
	{Code: "Oceania", Main: "CAZ", Countries: []string{
		"Papua New Guinea", "Solomon Islands", "Vanuatu", "Fiji", "Samoa", "Tonga", "Kiribati",
		"Micronesia", "Marshall Islands", "Palau", "Nauru", "Tuvalu",
	}},
}

// Default returns the shipped tables.
func Default() *Tables {
	t, err := New(defaultRows)
	if err != nil {
		panic(err)
	}
	return t
}

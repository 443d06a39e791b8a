package shipping

// Cities lists every province/territory of Pakistan with its major
// cities, used for the checkout city picker and rate lookups.
var Cities = map[string][]string{
	"Punjab": {
		"Lahore", "Faisalabad", "Rawalpindi", "Multan", "Gujranwala",
		"Sialkot", "Bahawalpur", "Sargodha", "Sheikhupura", "Jhang",
		"Rahim Yar Khan", "Gujrat", "Kasur", "Dera Ghazi Khan", "Sahiwal",
		"Okara", "Chiniot", "Kamoke", "Hafizabad", "Mandi Bahauddin",
		"Jhelum", "Khanewal", "Muzaffargarh", "Attock", "Vehari",
		"Mianwali", "Chakwal", "Bhakkar", "Layyah", "Lodhran",
		"Toba Tek Singh", "Narowal", "Pakpattan", "Rajanpur",
	},
	"Sindh": {
		"Karachi", "Hyderabad", "Sukkur", "Larkana", "Nawabshah",
		"Mirpur Khas", "Jacobabad", "Shikarpur", "Khairpur", "Dadu",
		"Thatta", "Badin", "Tando Adam", "Tando Allahyar", "Umerkot",
		"Sanghar", "Ghotki", "Matiari", "Tharparkar", "Jamshoro",
	},
	"Khyber Pakhtunkhwa": {
		"Peshawar", "Mardan", "Mingora", "Kohat", "Abbottabad",
		"Mansehra", "Swabi", "Nowshera", "Charsadda", "Dera Ismail Khan",
		"Bannu", "Hangu", "Haripur", "Karak", "Lakki Marwat",
		"Tank", "Batagram", "Buner", "Chitral", "Lower Dir",
		"Upper Dir", "Shangla", "Tor Ghar",
	},
	"Balochistan": {
		"Quetta", "Turbat", "Khuzdar", "Hub", "Chaman",
		"Gwadar", "Zhob", "Sibi", "Dera Murad Jamali", "Dera Allah Yar",
		"Pishin", "Nushki", "Kalat", "Mastung", "Loralai",
		"Ziarat", "Dalbandin", "Panjgur", "Awaran", "Lasbela",
	},
	"Islamabad Capital Territory": {
		"Islamabad",
	},
	"Azad Jammu & Kashmir": {
		"Muzaffarabad", "Mirpur", "Bhimber", "Kotli", "Rawalakot",
		"Bagh", "Pallandri", "Hatian Bala", "Haveli", "Neelum",
	},
	"Gilgit-Baltistan": {
		"Gilgit", "Skardu", "Chilas", "Hunza", "Ghizer",
		"Astore", "Kharmang", "Shigar", "Roundu",
	},
}

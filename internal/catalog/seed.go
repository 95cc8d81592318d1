package catalog

// Default reference rows inserted at first run. Seeding is idempotent:
// rows whose natural key already exists are left untouched.

var defaultCategories = []AccessoryCategory{
	{Name: "accessory", ArabicName: "إكسسوار", Description: "إكسسوارات عامة"},
	{Name: "charger", ArabicName: "شاحن", Description: "شواحن الهواتف"},
	{Name: "case", ArabicName: "غلاف", Description: "أغلفة الهواتف"},
	{Name: "screen_protector", ArabicName: "حماية الشاشة", Description: "حماية شاشة الهاتف"},
	{Name: "cable", ArabicName: "كابل", Description: "كابلات البيانات والشحن"},
	{Name: "headphone", ArabicName: "سماعات", Description: "سماعات الهواتف"},
	{Name: "other", ArabicName: "أخرى", Description: "فئات أخرى"},
}

var defaultPhoneTypes = []PhoneType{
	{Brand: "Apple", Model: "iPhone 15 Pro Max", Category: "flagship", ReleaseYear: 2024},
	{Brand: "Apple", Model: "iPhone 15 Pro", Category: "flagship", ReleaseYear: 2024},
	{Brand: "Apple", Model: "iPhone 15 Plus", Category: "flagship", ReleaseYear: 2024},
	{Brand: "Apple", Model: "iPhone 15", Category: "flagship", ReleaseYear: 2024},
	{Brand: "Apple", Model: "iPhone 14 Pro Max", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Apple", Model: "iPhone 14 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Apple", Model: "iPhone 14", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Apple", Model: "iPhone 13 Pro Max", Category: "flagship", ReleaseYear: 2022},
	{Brand: "Apple", Model: "iPhone 13", Category: "flagship", ReleaseYear: 2022},
	{Brand: "Apple", Model: "iPhone SE", Category: "midrange", ReleaseYear: 2022},
	{Brand: "Samsung", Model: "Galaxy S24 Ultra", Category: "flagship", ReleaseYear: 2024},
	{Brand: "Samsung", Model: "Galaxy S24+", Category: "flagship", ReleaseYear: 2024},
	{Brand: "Samsung", Model: "Galaxy S24", Category: "flagship", ReleaseYear: 2024},
	{Brand: "Samsung", Model: "Galaxy S23 Ultra", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Samsung", Model: "Galaxy Z Fold 5", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Samsung", Model: "Galaxy Z Flip 5", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Samsung", Model: "Galaxy A54", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Samsung", Model: "Galaxy A34", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Samsung", Model: "Galaxy A14", Category: "budget", ReleaseYear: 2023},
	{Brand: "Xiaomi", Model: "14 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Xiaomi", Model: "14", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Xiaomi", Model: "13T Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Xiaomi", Model: "Redmi Note 13 Pro", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Xiaomi", Model: "Redmi Note 13", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Xiaomi", Model: "Redmi 13C", Category: "budget", ReleaseYear: 2023},
	{Brand: "Huawei", Model: "Mate 60 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Huawei", Model: "P60 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Huawei", Model: "Nova 11", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Google", Model: "Pixel 8 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Google", Model: "Pixel 8", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Google", Model: "Pixel 7a", Category: "midrange", ReleaseYear: 2023},
	{Brand: "OnePlus", Model: "12", Category: "flagship", ReleaseYear: 2023},
	{Brand: "OnePlus", Model: "11", Category: "flagship", ReleaseYear: 2023},
	{Brand: "OnePlus", Model: "Nord 3", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Oppo", Model: "Find X7 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Oppo", Model: "Reno 11 Pro", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Vivo", Model: "X100 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Vivo", Model: "V29", Category: "midrange", ReleaseYear: 2023},
	{Brand: "Realme", Model: "GT 5 Pro", Category: "flagship", ReleaseYear: 2023},
	{Brand: "Realme", Model: "C Series", Category: "budget", ReleaseYear: 2023},
}

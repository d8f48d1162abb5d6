package category

// 分类枚举
const (
	TravelBuddys         = "travel_buddys"
	TourGuiders          = "tour_guiders"
	HotelsAccommodations = "hotels_accommodations"
	Caregivers           = "caregivers_time_currency"
	Donations            = "donations"
	ComboPackages        = "combo_packages"
	VehicleRentals       = "vehicle_rentals"
	CafesRestaurants     = "cafes_restaurants"
	TravelAgents         = "travel_agents"
	TourPackages         = "tour_packages"
	EventsEntertainment  = "events_entertainment"
	ExclusiveOffers      = "exclusive_offers"
	FoodsBeverages       = "foods_beverages"
	Flights              = "flights"
	Cruises              = "cruises"
	CampingSites         = "camping_sites"
	VillasHomestays      = "villas_homestays"
	Hostels              = "hostels"
	SpaWellness          = "spa_wellness"
	AdventureSports      = "adventure_sports"
	DivingSnorkeling     = "diving_snorkeling"
	SurfingSchools       = "surfing_schools"
	YogaRetreats         = "yoga_retreats"
	Photographers        = "photographers"
	Translators          = "translators"
	Drivers              = "drivers"
	AirportTransfers     = "airport_transfers"
	BikeRentals          = "bike_rentals"
	BoatRentals          = "boat_rentals"
	LocalMarkets         = "local_markets"
	SouvenirShops        = "souvenir_shops"
	CookingClasses       = "cooking_classes"
	LanguageClasses      = "language_classes"
	JobOpportunities     = "job_opportunities"
	VolunteerPrograms    = "volunteer_programs"
	LostAndFound         = "lost_and_found"
	TravelGearRentals    = "travel_gear_rentals"
	PetCare              = "pet_care"
	Babysitters          = "babysitters"
	MedicalTourism       = "medical_tourism"
	WeddingPlanners      = "wedding_planners"
	Nightlife            = "nightlife"
	AyurvedaCenters      = "ayurveda_centers"
	SafariTours          = "safari_tours"
	CurrencyExchange     = "currency_exchange"
	VisaServices         = "visa_services"
	TravelInsurance      = "travel_insurance"
	SimCards             = "sim_cards"
	LuggageStorage       = "luggage_storage"
	RealEstate           = "real_estate"
)

var defaultEntries = []Entry{
	{Key: TravelBuddys, DisplayName: "Travel Buddy", Noun: "profile", PublishPath: "/publish-travel-buddy", ManagePath: "/manage-travel-buddy/:id", ViewPath: "/travel-buddy/:id"},
	{Key: TourGuiders, DisplayName: "Tour Guide", Noun: "profile", PublishPath: "/publish-tour-guide", ManagePath: "/manage-tour-guide/:id", ViewPath: "/tour-guide/:id"},
	{Key: HotelsAccommodations, DisplayName: "Hotel & Accommodation", Noun: "listing", PublishPath: "/publish-hotel-accommodation", ManagePath: "/manage-hotel-accommodation/:id", ViewPath: "/hotel-accommodation/:id"},
	{Key: Caregivers, DisplayName: "Caregiver", Noun: "profile", PublishPath: "/publish-caregiver", ManagePath: "/manage-caregiver/:id", ViewPath: "/caregiver/:id"},
	{Key: Donations, DisplayName: "Donation", Noun: "campaign", PublishPath: "/publish-donation", ManagePath: "/manage-donation/:id", ViewPath: "/donation/:id"},
	{Key: ComboPackages, DisplayName: "Combo Package", Noun: "package", PublishPath: "/publish-combo-package", ManagePath: "/manage-combo-package/:id", ViewPath: "/combo-package/:id"},
	{Key: VehicleRentals, DisplayName: "Vehicle Rental", Noun: "listing", PublishPath: "/publish-vehicle-rental", ManagePath: "/manage-vehicle-rental/:id", ViewPath: "/vehicle-rental/:id"},
	{Key: CafesRestaurants, DisplayName: "Cafe & Restaurant", Noun: "listing", PublishPath: "/publish-cafe-restaurant", ManagePath: "/manage-cafe-restaurant/:id", ViewPath: "/cafe-restaurant/:id"},
	{Key: TravelAgents, DisplayName: "Travel Agent", Noun: "profile", PublishPath: "/publish-travel-agent", ManagePath: "/manage-travel-agent/:id", ViewPath: "/travel-agent/:id"},
	{Key: TourPackages, DisplayName: "Tour Package", Noun: "package", PublishPath: "/publish-tour-package", ManagePath: "/manage-tour-package/:id", ViewPath: "/tour-package/:id"},
	{Key: EventsEntertainment, DisplayName: "Event", Noun: "listing", PublishPath: "/publish-event", ManagePath: "/manage-event/:id", ViewPath: "/event/:id"},
	{Key: ExclusiveOffers, DisplayName: "Exclusive Offer", Noun: "offer", PublishPath: "/publish-exclusive-offer", ManagePath: "/manage-exclusive-offer/:id", ViewPath: "/exclusive-offer/:id"},
	{Key: FoodsBeverages, DisplayName: "Food & Beverage", Noun: "listing", PublishPath: "/publish-food-beverage", ManagePath: "/manage-food-beverage/:id", ViewPath: "/food-beverage/:id"},
	{Key: Flights, DisplayName: "Flight Deal", Noun: "listing", PublishPath: "/publish-flight-deal", ManagePath: "/manage-flight-deal/:id", ViewPath: "/flight-deal/:id"},
	{Key: Cruises, DisplayName: "Cruise", Noun: "package", PublishPath: "/publish-cruise", ManagePath: "/manage-cruise/:id", ViewPath: "/cruise/:id"},
	{Key: CampingSites, DisplayName: "Camping Site", Noun: "listing", PublishPath: "/publish-camping-site", ManagePath: "/manage-camping-site/:id", ViewPath: "/camping-site/:id"},
	{Key: VillasHomestays, DisplayName: "Villa & Homestay", Noun: "listing", PublishPath: "/publish-villa-homestay", ManagePath: "/manage-villa-homestay/:id", ViewPath: "/villa-homestay/:id"},
	{Key: Hostels, DisplayName: "Hostel", Noun: "listing", PublishPath: "/publish-hostel", ManagePath: "/manage-hostel/:id", ViewPath: "/hostel/:id"},
	{Key: SpaWellness, DisplayName: "Spa & Wellness", Noun: "listing", PublishPath: "/publish-spa-wellness", ManagePath: "/manage-spa-wellness/:id", ViewPath: "/spa-wellness/:id"},
	{Key: AdventureSports, DisplayName: "Adventure Sport", Noun: "listing", PublishPath: "/publish-adventure-sport", ManagePath: "/manage-adventure-sport/:id", ViewPath: "/adventure-sport/:id"},
	{Key: DivingSnorkeling, DisplayName: "Diving & Snorkeling", Noun: "listing", PublishPath: "/publish-diving-snorkeling", ManagePath: "/manage-diving-snorkeling/:id", ViewPath: "/diving-snorkeling/:id"},
	{Key: SurfingSchools, DisplayName: "Surfing School", Noun: "listing", PublishPath: "/publish-surfing-school", ManagePath: "/manage-surfing-school/:id", ViewPath: "/surfing-school/:id"},
	{Key: YogaRetreats, DisplayName: "Yoga Retreat", Noun: "listing", PublishPath: "/publish-yoga-retreat", ManagePath: "/manage-yoga-retreat/:id", ViewPath: "/yoga-retreat/:id"},
	{Key: Photographers, DisplayName: "Travel Photographer", Noun: "profile", PublishPath: "/publish-photographer", ManagePath: "/manage-photographer/:id", ViewPath: "/photographer/:id"},
	{Key: Translators, DisplayName: "Translator", Noun: "profile", PublishPath: "/publish-translator", ManagePath: "/manage-translator/:id", ViewPath: "/translator/:id"},
	{Key: Drivers, DisplayName: "Driver", Noun: "profile", PublishPath: "/publish-driver", ManagePath: "/manage-driver/:id", ViewPath: "/driver/:id"},
	{Key: AirportTransfers, DisplayName: "Airport Transfer", Noun: "listing", PublishPath: "/publish-airport-transfer", ManagePath: "/manage-airport-transfer/:id", ViewPath: "/airport-transfer/:id"},
	{Key: BikeRentals, DisplayName: "Bike Rental", Noun: "listing", PublishPath: "/publish-bike-rental", ManagePath: "/manage-bike-rental/:id", ViewPath: "/bike-rental/:id"},
	{Key: BoatRentals, DisplayName: "Boat Rental", Noun: "listing", PublishPath: "/publish-boat-rental", ManagePath: "/manage-boat-rental/:id", ViewPath: "/boat-rental/:id"},
	{Key: LocalMarkets, DisplayName: "Local Market", Noun: "listing", PublishPath: "/publish-local-market", ManagePath: "/manage-local-market/:id", ViewPath: "/local-market/:id"},
	{Key: SouvenirShops, DisplayName: "Souvenir Shop", Noun: "listing", PublishPath: "/publish-souvenir-shop", ManagePath: "/manage-souvenir-shop/:id", ViewPath: "/souvenir-shop/:id"},
	{Key: CookingClasses, DisplayName: "Cooking Class", Noun: "listing", PublishPath: "/publish-cooking-class", ManagePath: "/manage-cooking-class/:id", ViewPath: "/cooking-class/:id"},
	{Key: LanguageClasses, DisplayName: "Language Class", Noun: "listing", PublishPath: "/publish-language-class", ManagePath: "/manage-language-class/:id", ViewPath: "/language-class/:id"},
	{Key: JobOpportunities, DisplayName: "Job Opportunity", Noun: "post", PublishPath: "/publish-job", ManagePath: "/manage-job/:id", ViewPath: "/job/:id"},
	{Key: VolunteerPrograms, DisplayName: "Volunteer Program", Noun: "listing", PublishPath: "/publish-volunteer-program", ManagePath: "/manage-volunteer-program/:id", ViewPath: "/volunteer-program/:id"},
	{Key: LostAndFound, DisplayName: "Lost & Found", Noun: "post", PublishPath: "/publish-lost-found", ManagePath: "/manage-lost-found/:id", ViewPath: "/lost-found/:id"},
	{Key: TravelGearRentals, DisplayName: "Travel Gear Rental", Noun: "listing", PublishPath: "/publish-travel-gear", ManagePath: "/manage-travel-gear/:id", ViewPath: "/travel-gear/:id"},
	{Key: PetCare, DisplayName: "Pet Care", Noun: "profile", PublishPath: "/publish-pet-care", ManagePath: "/manage-pet-care/:id", ViewPath: "/pet-care/:id"},
	{Key: Babysitters, DisplayName: "Babysitter", Noun: "profile", PublishPath: "/publish-babysitter", ManagePath: "/manage-babysitter/:id", ViewPath: "/babysitter/:id"},
	{Key: MedicalTourism, DisplayName: "Medical Tourism", Noun: "listing", PublishPath: "/publish-medical-tourism", ManagePath: "/manage-medical-tourism/:id", ViewPath: "/medical-tourism/:id"},
	{Key: WeddingPlanners, DisplayName: "Wedding Planner", Noun: "profile", PublishPath: "/publish-wedding-planner", ManagePath: "/manage-wedding-planner/:id", ViewPath: "/wedding-planner/:id"},
	{Key: Nightlife, DisplayName: "Nightlife Venue", Noun: "listing", PublishPath: "/publish-nightlife", ManagePath: "/manage-nightlife/:id", ViewPath: "/nightlife/:id"},
	{Key: AyurvedaCenters, DisplayName: "Ayurveda Center", Noun: "listing", PublishPath: "/publish-ayurveda", ManagePath: "/manage-ayurveda/:id", ViewPath: "/ayurveda/:id"},
	{Key: SafariTours, DisplayName: "Safari Tour", Noun: "package", PublishPath: "/publish-safari-tour", ManagePath: "/manage-safari-tour/:id", ViewPath: "/safari-tour/:id"},
	{Key: CurrencyExchange, DisplayName: "Currency Exchange", Noun: "listing", PublishPath: "/publish-currency-exchange", ManagePath: "/manage-currency-exchange/:id", ViewPath: "/currency-exchange/:id"},
	{Key: VisaServices, DisplayName: "Visa Service", Noun: "listing"},
	{Key: TravelInsurance, DisplayName: "Travel Insurance", Noun: "plan"},
	{Key: SimCards, DisplayName: "SIM Card", Noun: "listing"},
	{Key: LuggageStorage, DisplayName: "Luggage Storage", Noun: "listing"},
	{Key: RealEstate, DisplayName: "Real Estate", Noun: "listing"},
}

// DefaultTable 内置分类路由表
func DefaultTable() *Table {
	return NewTable(defaultEntries...)
}

package reply

// translations holds every reply template per language code. Placeholders
// are written as {name}.
var translations = map[string]map[Key]string{
	"en": {
		KeyGreeting:         "Hello! I can tell you about groundwater level, quality (pH/TDS/COD/BOD), and irrigation status. Just ask, e.g., 'groundwater level in Kuppam'",
		KeyNoLocation:       "Please specify a location (example: 'groundwater level in Kuppam')",
		KeyNoData:           "No data found for location: {location}",
		KeyLevelReply:       "Groundwater level in {location}: {level} m. Last updated: {date}.",
		KeyQualityReply:     "Water quality in {location}: pH is {ph}, TDS is {tds} mg/L, COD is {cod} mg/L, and BOD is {bod} mg/L. Last updated: {date}.",
		KeyStatusReply:      "For {location}, the water is: {status}. Last updated: {date}.",
		KeyFullReportTitle:  "Here is the full report for {location}:",
		KeyFullReportLevel:  "• Groundwater Level: {level} m.",
		KeyFullReportPH:     "• pH: {ph}.",
		KeyFullReportTDS:    "• TDS: {tds} mg/L.",
		KeyFullReportCOD:    "• COD: {cod} mg/L.",
		KeyFullReportBOD:    "• BOD: {bod} mg/L.",
		KeyFullReportStatus: "• Status: {status}.",
		KeyFullReportDate:   "• Last updated: {date}.",
		KeyUnknownRequest:   "I'm sorry, I don't understand that request. Could you please rephrase?",
		KeyTDSDef:           "TDS stands for Total Dissolved Solids. It is a measure of the total concentration of dissolved substances in water, which affects its taste and quality.",
		KeyBODDef:           "BOD stands for Biochemical Oxygen Demand. It measures the amount of oxygen consumed by microorganisms to decompose organic matter in water.",
		KeyCODDef:           "COD stands for Chemical Oxygen Demand. It measures the amount of oxygen required to chemically break down pollutants in water.",
		KeyPHDef:            "pH is a measure of how acidic or alkaline (basic) the water is. A pH of 7 is neutral, while lower values are acidic and higher values are alkaline.",
		KeyDefError:         "I can define TDS, BOD, COD, or pH for you. Please ask for a specific term.",
	},
	"ta": {
		KeyGreeting:         "வணக்கம்! நிலத்தடி நீர் மட்டம், தரம் (pH/TDS/COD/BOD) மற்றும் பாசன நிலை குறித்து நான் உங்களுக்குச் சொல்ல முடியும். உதாரணமாக, 'குப்பம் நிலத்தடி நீர் மட்டம்' என்று கேளுங்கள்.",
		KeyNoLocation:       "தயவுசெய்து ஒரு இடத்தைக் குறிப்பிடவும் (உதாரணமாக: 'குப்பம் நிலத்தடி நீர் மட்டம்')",
		KeyNoData:           "{location} இடத்திற்கான தரவு கிடைக்கவில்லை",
		KeyLevelReply:       "{location} இல் நிலத்தடி நீர் மட்டம்: {level} மீ. கடைசியாக புதுப்பிக்கப்பட்டது: {date}.",
		KeyQualityReply:     "{location} இல் நீர் தரம்: pH {ph}, TDS {tds} மி.கி/லி, COD {cod} மி.கி/லி, மற்றும் BOD {bod} மி.கி/லி. கடைசியாக புதுப்பிக்கப்பட்டது: {date}.",
		KeyStatusReply:      "{location} இல் உள்ள நீர்: {status}. கடைசியாக புதுப்பிக்கப்பட்டது: {date}.",
		KeyFullReportTitle:  "{location} குறித்த முழு அறிக்கை இங்கே உள்ளது:",
		KeyFullReportLevel:  "• நிலத்தடி நீர் மட்டம்: {level} மீ.",
		KeyFullReportPH:     "• pH: {ph}.",
		KeyFullReportTDS:    "• TDS: {tds} மி.கி/லி.",
		KeyFullReportCOD:    "• COD: {cod} மி.கி/லி.",
		KeyFullReportBOD:    "• BOD: {bod} மி.கி/லி.",
		KeyFullReportStatus: "• நிலை: {status}.",
		KeyFullReportDate:   "• கடைசியாக புதுப்பிக்கப்பட்டது: {date}.",
		KeyUnknownRequest:   "மன்னிக்கவும், அந்த கோரிக்கை எனக்குப் புரியவில்லை. தயவுசெய்து மீண்டும் கேட்க முடியுமா?",
		KeyTDSDef:           "TDS என்பது நீரில் கரைந்துள்ள மொத்த திடப்பொருட்களைக் குறிக்கிறது. இது நீரின் சுவை மற்றும் தரத்தை பாதிக்கும் நீரில் கரைந்துள்ள பொருட்களின் மொத்த செறிவின் அளவீடு ஆகும்.",
		KeyBODDef:           "BOD என்பது உயிரி இரசாயன ஆக்ஸிஜன் தேவையைக் குறிக்கிறது. இது நீரில் உள்ள கரிமப் பொருட்களை சிதைக்க நுண்ணுயிரிகளால் பயன்படுத்தப்படும் ஆக்ஸிஜன் அளவை அளவிடுகிறது.",
		KeyCODDef:           "COD என்பது இரசாயன ஆக்ஸிஜன் தேவையைக் குறிக்கிறது. இது நீரில் உள்ள மாசுக்களை இரசாயன ரீதியாக உடைக்கத் தேவையான ஆக்ஸிஜன் அளவை அளவிடுகிறது.",
		KeyPHDef:            "pH என்பது நீர் எவ்வளவு அமிலத்தன்மை கொண்டது அல்லது காரத்தன்மை கொண்டது என்பதற்கான அளவீடு ஆகும். pH 7 என்பது நடுநிலை, அதேசமயம் குறைந்த மதிப்புகள் அமிலத்தன்மை கொண்டவை மற்றும் அதிக மதிப்புகள் காரத்தன்மை கொண்டவை.",
		KeyDefError:         "நான் உங்களுக்கு TDS, BOD, COD அல்லது pH-ஐ வரையறுக்க முடியும். தயவுசெய்து ஒரு குறிப்பிட்ட பதத்தைக் கேளுங்கள்.",
	},
	"te": {
		KeyGreeting:         "నమస్కారం! నేను మీకు భూగర్భ జలాల స్థాయి, నాణ్యత (pH/TDS/COD/BOD), మరియు సాగునీటి స్థితి గురించి చెప్పగలను. ఉదాహరణకు, 'కుప్పం భూగర్భ జలాల స్థాయి' అని అడగండి.",
		KeyNoLocation:       "దయచేసి ఒక స్థానాన్ని పేర్కొనండి (ఉదాహరణకు: 'కుప్పం భూగర్భ జలాల స్థాయి')",
		KeyNoData:           "{location} స్థానానికి డేటా కనుగొనబడలేదు",
		KeyLevelReply:       "{location} లో భూగర్భ జలాల స్థాయి: {level} మీ. చివరిగా నవీకరించబడింది: {date}.",
		KeyQualityReply:     "{location} లో నీటి నాణ్యత: pH {ph}, TDS {tds} mg/L, COD {cod} mg/L, మరియు BOD {bod} mg/L. చివరిగా నవీకరించబడింది: {date}.",
		KeyStatusReply:      "{location} కోసం, నీరు: {status}. చివరిగా నవీకరించబడింది: {date}.",
		KeyFullReportTitle:  "{location} కోసం పూర్తి నివేదిక ఇక్కడ ఉంది:",
		KeyFullReportLevel:  "• భూగర్భ జలాల స్థాయి: {level} మీ.",
		KeyFullReportPH:     "• pH: {ph}.",
		KeyFullReportTDS:    "• TDS: {tds} mg/L.",
		KeyFullReportCOD:    "• COD: {cod} mg/L.",
		KeyFullReportBOD:    "• BOD: {bod} mg/L.",
		KeyFullReportStatus: "• స్థితి: {status}.",
		KeyFullReportDate:   "• చివరిగా నవీకరించబడింది: {date}.",
		KeyUnknownRequest:   "క్షమించండి, ఆ అభ్యర్థన నాకు అర్థం కాలేదు. దయచేసి తిరిగి అడగగలరా?",
		KeyTDSDef:           "TDS అంటే మొత్తం కరిగిన ఘనపదార్థాలు. ఇది నీటి రుచి మరియు నాణ్యతను ప్రభావితం చేసే నీటిలో కరిగిన పదార్ధాల మొత్తం సాంద్రత యొక్క కొలత.",
		KeyBODDef:           "BOD అంటే జీవరసాయన ఆక్సిజన్ డిమాండ్. ఇది నీటిలో సేంద్రీయ పదార్థాన్ని కుళ్ళిపోయేలా సూక్ష్మజీవుల ద్వారా వినియోగించబడే ఆక్సిజన్ మొత్తాన్ని కొలుస్తుంది.",
		KeyCODDef:           "COD అంటే రసాయన ఆక్సిజన్ డిమాండ్. ఇది నీటిలో కాలుష్య కారకాలను రసాయనికంగా విచ్ఛిన్నం చేయడానికి అవసరమైన ఆక్సిజన్ మొత్తాన్ని కొలుస్తుంది.",
		KeyPHDef:            "pH అనేది నీరు ఎంత ఆమ్లంగా లేదా క్షారంగా (బేసిక్) ఉందో కొలిచే కొలత. pH 7 అనేది நடுநிலை, అదేసమయం குறைந்த மதிப்புகள் ఆమ్లంగా మరియు అధిక విలువలు క్షారంగా ఉంటాయి.",
		KeyDefError:         "నేను మీకు TDS, BOD, COD లేదా pH ను నిర్వచించగలను. தயவுசெய்து ఒక నిర్దిஷ்ட పదం కోసం అడగండి.",
	},
}
